package sweeper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/sweep"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context) (sweep.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).(sweep.Report), args.Error(1)
}

func TestJob(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{name: "success", runErr: nil},
		{name: "lock held elsewhere", runErr: sweep.ErrSweepInProgress},
		{name: "wrapped lock held", runErr: errors.Join(errors.New("sweep.Run"), sweep.ErrSweepInProgress)},
		{name: "failure", runErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockRunner)
			r.On("Run", mock.Anything).Return(sweep.Report{}, tt.runErr).Once()

			err := Job(r)(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}
