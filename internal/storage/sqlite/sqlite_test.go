package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crashlog/internal/models"
	"crashlog/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "crashlog-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteUsers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	user := &models.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Address:      "12 Elm Street",
		PhoneNumber:  "5559876543",
	}

	t.Run("create generates id and created_at", func(t *testing.T) {
		require.NoError(t, store.CreateUser(ctx, user))
		assert.NotEmpty(t, user.ID)
		assert.NotZero(t, user.CreatedAt)
	})

	t.Run("get by id and by email", func(t *testing.T) {
		byID, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)
		assert.Equal(t, user.PasswordHash, byID.PasswordHash)

		byEmail, err := store.GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := &models.User{Email: "alice@example.com"}
		err := store.CreateUser(ctx, dup)
		assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSQLitePersons(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	person := &models.Person{
		FirstName:   "Pat",
		LastName:    "Driver",
		PhoneNumber: "5551234567",
		Involvement: "other driver",
	}
	require.NoError(t, store.CreatePerson(ctx, person))
	require.NotEmpty(t, person.ID)

	t.Run("round trip", func(t *testing.T) {
		got, err := store.GetPerson(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, person, got)
	})

	t.Run("update overwrites", func(t *testing.T) {
		person.Involvement = "witness"
		require.NoError(t, store.UpdatePerson(ctx, person))

		got, err := store.GetPerson(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, "witness", got.Involvement)
	})

	t.Run("update of a missing person is not found", func(t *testing.T) {
		ghost := &models.Person{ID: "nonexistent", FirstName: "No", LastName: "One"}
		assert.ErrorIs(t, store.UpdatePerson(ctx, ghost), storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeletePerson(ctx, person.ID))
		_, err := store.GetPerson(ctx, person.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeletePerson(ctx, person.ID), storage.ErrNotFound)
	})
}

func TestSQLiteInsurances(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ins := &models.Insurance{
		OwnerKind:             models.OwnerUser,
		OwnerID:               "user-1",
		CarRegistrationNumber: "AB12 CDE",
		InsurerCompany:        "Acme Insurance",
		InsurerContactNumber:  "5550001111",
		InsurancePolicy:       "fully comprehensive",
		InsurancePolicyNumber: "POL-42",
	}
	require.NoError(t, store.CreateInsurance(ctx, ins))
	require.NotEmpty(t, ins.ID)

	t.Run("round trip", func(t *testing.T) {
		got, err := store.GetInsurance(ctx, ins.ID)
		require.NoError(t, err)
		assert.Equal(t, ins, got)
	})

	t.Run("list by owner", func(t *testing.T) {
		other := &models.Insurance{
			OwnerKind:             models.OwnerPerson,
			OwnerID:               "person-1",
			CarRegistrationNumber: "XY99 ZZZ",
		}
		require.NoError(t, store.CreateInsurance(ctx, other))

		mine, err := store.ListInsurancesByOwner(ctx, models.OwnerUser, "user-1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, ins.ID, mine[0].ID)

		all, err := store.ListInsurances(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update overwrites", func(t *testing.T) {
		ins.InsurerCompany = "New Insurer"
		require.NoError(t, store.UpdateInsurance(ctx, ins))

		got, err := store.GetInsurance(ctx, ins.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Insurer", got.InsurerCompany)
	})

	t.Run("delete all wipes the table", func(t *testing.T) {
		require.NoError(t, store.DeleteAllInsurances(ctx))
		all, err := store.ListInsurances(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestSQLiteAccidents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	acc := &models.Accident{
		UserID:            "user-1",
		Date:              time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Time:              "14:30",
		Location:          "Main St & 5th Ave",
		Speed:             "30",
		WeatherConditions: "rain",
		CrashDescription:  "rear-ended at the lights",
		Photos:            []models.Photo{{URL: "https://img.example/1.jpg"}},
		Witnesses: []models.Witness{
			{FirstName: "Wen", LastName: "Lee", PhoneNumber: "5550001", Involvement: "witness"},
		},
		OtherVehicles: []models.Vehicle{
			{RegistrationNumber: "ZZ1", Make: "Ford", Model: "Focus"},
		},
	}
	require.NoError(t, store.CreateAccident(ctx, acc))
	require.NotEmpty(t, acc.ID)

	t.Run("round trip preserves embedded collections", func(t *testing.T) {
		got, err := store.GetAccident(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Photos, got.Photos)
		assert.Equal(t, acc.Witnesses, got.Witnesses)
		assert.Equal(t, acc.OtherVehicles, got.OtherVehicles)
		assert.True(t, got.Date.Equal(acc.Date))
	})

	t.Run("date defaults when zero", func(t *testing.T) {
		bare := &models.Accident{UserID: "user-1", Time: "09:00"}
		require.NoError(t, store.CreateAccident(ctx, bare))
		assert.False(t, bare.Date.IsZero())
	})

	t.Run("empty collections read back as empty, not nil rows", func(t *testing.T) {
		bare := &models.Accident{UserID: "user-2", Time: "10:00"}
		require.NoError(t, store.CreateAccident(ctx, bare))

		got, err := store.GetAccident(ctx, bare.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Photos)
		assert.Empty(t, got.Witnesses)
		assert.Empty(t, got.OtherVehicles)
	})

	t.Run("list by user", func(t *testing.T) {
		mine, err := store.ListAccidentsByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		all, err := store.ListAccidents(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update rewrites collections", func(t *testing.T) {
		acc.Photos = append(acc.Photos, models.Photo{URL: "https://img.example/2.jpg"})
		acc.Witnesses = nil
		require.NoError(t, store.UpdateAccident(ctx, acc))

		got, err := store.GetAccident(ctx, acc.ID)
		require.NoError(t, err)
		assert.Len(t, got.Photos, 2)
		assert.Empty(t, got.Witnesses)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteAccident(ctx, acc.ID))
		_, err := store.GetAccident(ctx, acc.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
