// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"crashlog/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Store defines the persistence operations for all aggregates.
// This abstraction allows swapping storage backends (SQLite, MongoDB,
// in-memory) without changing the service layer.
type Store interface {
	UserStore
	PersonStore
	InsuranceStore
	AccidentStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser persists a new user. The user.ID field is populated by
	// the store when empty. Returns ErrDuplicateEmail when the email is
	// already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns ErrNotFound when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PersonStore persists non-account individuals.
type PersonStore interface {
	// CreatePerson persists a new person, populating person.ID when empty.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person by ID.
	// Returns ErrNotFound when no such person exists.
	GetPerson(ctx context.Context, id string) (*models.Person, error)

	// UpdatePerson overwrites an existing person.
	// Returns ErrNotFound when no such person exists.
	UpdatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes a person by ID.
	// Returns ErrNotFound when no such person exists.
	DeletePerson(ctx context.Context, id string) error
}

// InsuranceStore persists insurance records.
type InsuranceStore interface {
	// CreateInsurance persists a new record, populating ins.ID when empty.
	CreateInsurance(ctx context.Context, ins *models.Insurance) error

	// GetInsurance retrieves a record by ID.
	// Returns ErrNotFound when no such record exists.
	GetInsurance(ctx context.Context, id string) (*models.Insurance, error)

	// UpdateInsurance overwrites an existing record.
	// Returns ErrNotFound when no such record exists.
	UpdateInsurance(ctx context.Context, ins *models.Insurance) error

	// DeleteInsurance removes a record by ID.
	// Returns ErrNotFound when no such record exists.
	DeleteInsurance(ctx context.Context, id string) error

	// ListInsurances returns every record in creation order.
	ListInsurances(ctx context.Context) ([]*models.Insurance, error)

	// ListInsurancesByOwner returns the records owned by the given
	// aggregate, in creation order.
	ListInsurancesByOwner(ctx context.Context, kind models.OwnerKind, ownerID string) ([]*models.Insurance, error)

	// DeleteAllInsurances wipes the ledger. Administrative escape hatch;
	// callers gate it behind separate authorization.
	DeleteAllInsurances(ctx context.Context) error
}

// AccidentStore persists accident reports.
type AccidentStore interface {
	// CreateAccident persists a new report, populating acc.ID when empty.
	CreateAccident(ctx context.Context, acc *models.Accident) error

	// GetAccident retrieves a report by ID.
	// Returns ErrNotFound when no such report exists.
	GetAccident(ctx context.Context, id string) (*models.Accident, error)

	// UpdateAccident overwrites an existing report, including its
	// embedded photo, witness, and vehicle collections.
	// Returns ErrNotFound when no such report exists.
	UpdateAccident(ctx context.Context, acc *models.Accident) error

	// DeleteAccident removes a report by ID.
	// Returns ErrNotFound when no such report exists.
	DeleteAccident(ctx context.Context, id string) error

	// ListAccidents returns every report in creation order.
	ListAccidents(ctx context.Context) ([]*models.Accident, error)

	// ListAccidentsByUser returns the reports filed by the given user,
	// in creation order.
	ListAccidentsByUser(ctx context.Context, userID string) ([]*models.Accident, error)
}
