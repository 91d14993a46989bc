package service

import (
	"context"
	"errors"

	"crashlog/internal/apperr"
	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// Owner is the resolved polymorphic owner of an insurance record.
// Exactly one field is set; both nil means the owner was deleted.
type Owner struct {
	User   *models.User
	Person *models.Person
}

// ResolveOwner resolves an insurance record's owner with a single keyed
// lookup: the stored OwnerKind says which registry to ask, so no probing
// across id spaces is needed. A deleted owner resolves to nil rather than
// an error; the record itself is not cleaned up when its owner goes away.
func (s *InsuranceService) ResolveOwner(ctx context.Context, ins *models.Insurance) (*Owner, error) {
	switch ins.OwnerKind {
	case models.OwnerUser:
		user, err := s.store.GetUserByID(ctx, ins.OwnerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil
			}
			return nil, apperr.Internal("Could not resolve insurance owner", err)
		}
		return &Owner{User: user}, nil

	case models.OwnerPerson:
		person, err := s.store.GetPerson(ctx, ins.OwnerID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil
			}
			return nil, apperr.Internal("Could not resolve insurance owner", err)
		}
		return &Owner{Person: person}, nil
	}

	// Unowned historical record.
	return nil, nil
}
