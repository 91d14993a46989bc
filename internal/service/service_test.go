package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crashlog/internal/auth"
	"crashlog/internal/metrics"
	"crashlog/internal/models"
	"crashlog/internal/storage/memory"
)

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	store      *memory.MemoryStore
	identity   *IdentityService
	persons    *PersonService
	insurances *InsuranceService
	accidents  *AccidentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	m := metrics.Nop()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	return &testEnv{
		store:      store,
		identity:   NewIdentityService(store, authenticator, jwtManager, m, logger),
		persons:    NewPersonService(store),
		insurances: NewInsuranceService(store, m),
		accidents:  NewAccidentService(store, m),
	}
}

// registerUser creates an account with valid defaults and returns it.
func (e *testEnv) registerUser(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := e.identity.CreateUser(context.Background(), CreateUserInput{
		Email:             email,
		Password:          "secret123",
		ConfirmedPassword: "secret123",
		FirstName:         "Test",
		LastName:          "User",
		Address:           "1 Main Street",
		PhoneNumber:       "5551234567",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) addAccident(t *testing.T, userID string) *models.Accident {
	t.Helper()

	acc, err := e.accidents.Add(context.Background(), userID, AddAccidentInput{
		Time:              "14:30",
		Location:          "Main St & 5th Ave",
		Speed:             "30",
		WeatherConditions: "rain",
		CrashDescription:  "rear-ended at the lights",
	})
	require.NoError(t, err)
	return acc
}

func strPtr(s string) *string { return &s }
