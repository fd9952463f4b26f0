package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/migrations"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(ctx, connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	t.Cleanup(func() {
		_ = storage.Close()
	})

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))
	return storage
}

// TestDataFactory создает тестовые записи через методы хранилища.
type TestDataFactory struct {
	storage *Storage
}

func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	u, err := f.storage.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        email,
		FullName:     "Test " + username,
		PasswordHash: "hashedpassword",
		AccountType:  models.AccountCustomer,
		Location:     models.Location{Type: models.LocationPoint, Coordinates: []float64{77.2, 28.6}},
	})
	require.NoError(t, err)
	return u
}

func (f *TestDataFactory) CreateQRCode(t *testing.T, userID, qrID string, validTill time.Time) *models.QRCode {
	t.Helper()
	q, err := f.storage.CreateQRCode(context.Background(), models.QRCode{
		UserID:    userID,
		QRID:      qrID,
		ValidTill: validTill,
	})
	require.NoError(t, err)
	return q
}

func (f *TestDataFactory) CreatePhoto(t *testing.T, qrCodeID, url string) *models.Photo {
	t.Helper()
	p, err := f.storage.CreatePhoto(context.Background(), models.Photo{
		QRCodeID:   qrCodeID,
		PhotoURL:   url,
		UploadedBy: models.UploadedByGuest,
	})
	require.NoError(t, err)
	return p
}
