package service

import (
	"context"
	"errors"
	"log/slog"

	"crashlog/internal/apperr"
	"crashlog/internal/metrics"
	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// InsuranceService manages the insurance ledger. Records are owned by a
// User or a Person; the owner stored on the record is the authorization
// source of truth.
type InsuranceService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewInsuranceService creates a new insurance service.
func NewInsuranceService(store storage.Store, m *metrics.Metrics) *InsuranceService {
	return &InsuranceService{store: store, metrics: m}
}

// AddInsuranceInput carries the fields for a new insurance record.
// When OtherDriverID is set the record is owned by that person (or user,
// when OwnerType says so); otherwise it is owned by the calling user.
type AddInsuranceInput struct {
	CarRegistrationNumber string
	InsurerCompany        string
	InsurerContactNumber  string
	InsurancePolicy       string
	InsurancePolicyNumber string
	OtherDriverID         *string
	OwnerType             *string
}

// EditInsuranceInput carries a partial update; nil fields are left
// unchanged.
type EditInsuranceInput struct {
	InsuranceID           string
	CarRegistrationNumber *string
	InsurerCompany        *string
	InsurerContactNumber  *string
	InsurancePolicy       *string
	InsurancePolicyNumber *string
}

// Add creates an insurance record owned by the caller, or by the given
// other driver when one is named.
func (s *InsuranceService) Add(ctx context.Context, callerID string, in AddInsuranceInput) (*models.Insurance, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	ins := &models.Insurance{
		OwnerKind:             models.OwnerUser,
		OwnerID:               callerID,
		CarRegistrationNumber: in.CarRegistrationNumber,
		InsurerCompany:        in.InsurerCompany,
		InsurerContactNumber:  in.InsurerContactNumber,
		InsurancePolicy:       in.InsurancePolicy,
		InsurancePolicyNumber: in.InsurancePolicyNumber,
	}

	if in.OtherDriverID != nil && *in.OtherDriverID != "" {
		// Recording the other party's insurance: the named owner must
		// exist in the registry the discriminator selects.
		kind := models.OwnerPerson
		if in.OwnerType != nil && *in.OwnerType == string(models.OwnerUser) {
			kind = models.OwnerUser
		}

		switch kind {
		case models.OwnerUser:
			if _, err := s.store.GetUserByID(ctx, *in.OtherDriverID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, apperr.NotFound("Could not find that user")
				}
				return nil, apperr.Internal("Could not fetch user", err)
			}
		case models.OwnerPerson:
			if _, err := s.store.GetPerson(ctx, *in.OtherDriverID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, apperr.NotFound("Cannot find that person")
				}
				return nil, apperr.Internal("Could not fetch person", err)
			}
		}

		ins.OwnerKind = kind
		ins.OwnerID = *in.OtherDriverID
	}

	if err := s.store.CreateInsurance(ctx, ins); err != nil {
		return nil, apperr.Internal("Could not save insurance details", err)
	}

	s.metrics.InsurancesCreated.Inc()
	slog.Info("insurance created", "insurance_id", ins.ID, "owner_kind", ins.OwnerKind, "owner_id", ins.OwnerID)
	return ins, nil
}

// Edit applies a partial update to an insurance record owned by the
// caller. A missing record is a soft miss and returns nil without error;
// a record owned by someone else reads as "cannot find".
func (s *InsuranceService) Edit(ctx context.Context, callerID string, in EditInsuranceInput) (*models.Insurance, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	ins, err := s.store.GetInsurance(ctx, in.InsuranceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("Could not fetch insurance details", err)
	}
	if !ownedByUser(ins, callerID) {
		return nil, apperr.NotFound("Cannot find these insurance details")
	}

	applyString(&ins.CarRegistrationNumber, in.CarRegistrationNumber)
	applyString(&ins.InsurerCompany, in.InsurerCompany)
	applyString(&ins.InsurerContactNumber, in.InsurerContactNumber)
	applyString(&ins.InsurancePolicy, in.InsurancePolicy)
	applyString(&ins.InsurancePolicyNumber, in.InsurancePolicyNumber)

	if err := s.store.UpdateInsurance(ctx, ins); err != nil {
		return nil, apperr.Internal("Could not update insurance details", err)
	}

	return ins, nil
}

// Delete removes an insurance record owned by the caller and returns the
// deleted snapshot. A record that does not exist or belongs to someone
// else reads as "cannot find" either way, so existence is not leaked.
func (s *InsuranceService) Delete(ctx context.Context, callerID, insuranceID string) (*models.Insurance, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	ins, err := s.store.GetInsurance(ctx, insuranceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Cannot find these insurance details")
		}
		return nil, apperr.Internal("Could not fetch insurance details", err)
	}
	if !ownedByUser(ins, callerID) {
		return nil, apperr.NotFound("Cannot find these insurance details")
	}

	if err := s.store.DeleteInsurance(ctx, insuranceID); err != nil {
		return nil, apperr.Internal("Could not delete insurance details", err)
	}

	slog.Info("insurance deleted", "insurance_id", insuranceID, "user_id", callerID)
	return ins, nil
}

// Find retrieves one record by ID. Missing records are a soft miss.
func (s *InsuranceService) Find(ctx context.Context, insuranceID string) (*models.Insurance, error) {
	ins, err := s.store.GetInsurance(ctx, insuranceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("Could not fetch insurance details", err)
	}
	return ins, nil
}

// All returns every record in the ledger.
func (s *InsuranceService) All(ctx context.Context) ([]*models.Insurance, error) {
	list, err := s.store.ListInsurances(ctx)
	if err != nil {
		return nil, apperr.Internal("Could not fetch insurance details", err)
	}
	return list, nil
}

// AllMine returns the records owned by the calling user.
func (s *InsuranceService) AllMine(ctx context.Context, callerID string) ([]*models.Insurance, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	list, err := s.store.ListInsurancesByOwner(ctx, models.OwnerUser, callerID)
	if err != nil {
		return nil, apperr.Internal("Could not fetch insurance details", err)
	}
	return list, nil
}

// DeleteAll wipes the ledger. Administrative escape hatch: it requires
// the separately-configured admin token, never an ordinary bearer token.
func (s *InsuranceService) DeleteAll(ctx context.Context, isAdmin bool) error {
	if !isAdmin {
		return apperr.Unauthenticated("Admin authorization required")
	}

	if err := s.store.DeleteAllInsurances(ctx); err != nil {
		return apperr.Internal("Could not delete insurance records", err)
	}

	slog.Warn("insurance ledger wiped by admin")
	return nil
}

// ownedByUser reports whether ins belongs to the given user.
func ownedByUser(ins *models.Insurance, userID string) bool {
	return ins.OwnerKind == models.OwnerUser && ins.OwnerID == userID
}
