package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/sweep"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/qr/validate/{qrId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	})

	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/qr/validate/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/qr/validate/{qrId}", "GET", "410")))
}

func TestObserveSweep(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSweep(sweep.Report{Candidates: 4, Sent: 2, Skipped: 1, Failed: 1}, time.Second, nil)
	m.ObserveSweep(sweep.Report{}, time.Millisecond, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sweepDigests.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepDigests.WithLabelValues("failed")))
}
