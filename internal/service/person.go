package service

import (
	"context"
	"errors"
	"log/slog"

	"crashlog/internal/apperr"
	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// PersonService manages the registry of non-account individuals.
//
// The registry is deliberately open: witnesses and other drivers are
// recorded by the reporting user on the other party's behalf, so no
// ownership check applies to any person operation.
type PersonService struct {
	store storage.Store
}

// NewPersonService creates a new person service.
func NewPersonService(store storage.Store) *PersonService {
	return &PersonService{store: store}
}

// AddPersonInput carries the fields for registering a person.
type AddPersonInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Involvement string
}

// EditPersonInput carries a partial update; nil fields are left unchanged.
type EditPersonInput struct {
	PersonID    string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Involvement *string
}

// Add registers a new person.
func (s *PersonService) Add(ctx context.Context, in AddPersonInput) (*models.Person, error) {
	if len(in.FirstName) < 2 || len(in.LastName) < 2 {
		return nil, apperr.Validation("First and last name must be at least 2 characters")
	}
	if len(in.PhoneNumber) < 7 {
		return nil, apperr.Validation("Phone number must be at least 7 digits")
	}
	if in.Involvement == "" {
		return nil, apperr.Validation("Involvement is required")
	}

	person := &models.Person{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Involvement: in.Involvement,
	}
	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, apperr.Internal("Could not save person", err)
	}

	slog.Info("person registered", "person_id", person.ID)
	return person, nil
}

// Edit applies a partial update to a person. Only supplied fields change,
// so applying the same edit twice yields the same final state.
func (s *PersonService) Edit(ctx context.Context, in EditPersonInput) (*models.Person, error) {
	person, err := s.store.GetPerson(ctx, in.PersonID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Cannot find that person")
		}
		return nil, apperr.Internal("Could not fetch person", err)
	}

	applyString(&person.FirstName, in.FirstName)
	applyString(&person.LastName, in.LastName)
	applyString(&person.PhoneNumber, in.PhoneNumber)
	applyString(&person.Involvement, in.Involvement)

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return nil, apperr.Internal("Could not update person", err)
	}

	return person, nil
}

// Delete removes a person and returns the deleted snapshot. References to
// the person from insurance records or accident witnesses are not cleaned
// up; their owners resolve to null afterwards.
func (s *PersonService) Delete(ctx context.Context, personID string) (*models.Person, error) {
	person, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Cannot find that person")
		}
		return nil, apperr.Internal("Could not fetch person", err)
	}

	if err := s.store.DeletePerson(ctx, personID); err != nil {
		return nil, apperr.Internal("Could not delete person", err)
	}

	slog.Info("person deleted", "person_id", personID)
	return person, nil
}

// applyString overwrites dst only when a new value was supplied.
func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
