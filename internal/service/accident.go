package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"crashlog/internal/apperr"
	"crashlog/internal/metrics"
	"crashlog/internal/models"
	"crashlog/internal/storage"
)

// AccidentService manages the accident ledger. Every report is owned by
// exactly one user, and every mutation checks that the caller is that
// user. An ownership miss reads as "cannot find" whether the report is
// missing or merely someone else's, so other users' reports stay
// invisible.
type AccidentService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewAccidentService creates a new accident service.
func NewAccidentService(store storage.Store, m *metrics.Metrics) *AccidentService {
	return &AccidentService{store: store, metrics: m}
}

// AddAccidentInput carries the fields for a new report, including any
// initial sub-collections.
type AddAccidentInput struct {
	Date              *time.Time
	Time              string
	Location          string
	Speed             string
	WeatherConditions string
	CrashDescription  string
	Photos            []models.Photo
	Witnesses         []models.Witness
	OtherVehicles     []models.Vehicle
}

// EditAccidentInput carries a partial update; nil fields are left
// unchanged.
type EditAccidentInput struct {
	AccidentID        string
	Date              *time.Time
	Time              *string
	Location          *string
	Speed             *string
	WeatherConditions *string
	CrashDescription  *string
}

// Add files a new accident report owned by the caller. The accident date
// defaults to the time of filing when not supplied.
func (s *AccidentService) Add(ctx context.Context, callerID string, in AddAccidentInput) (*models.Accident, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	acc := &models.Accident{
		UserID:            callerID,
		Time:              in.Time,
		Location:          in.Location,
		Speed:             in.Speed,
		WeatherConditions: in.WeatherConditions,
		CrashDescription:  in.CrashDescription,
		Photos:            in.Photos,
		Witnesses:         in.Witnesses,
		OtherVehicles:     in.OtherVehicles,
	}
	if in.Date != nil {
		acc.Date = *in.Date
	}

	if err := s.store.CreateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not save accident", err)
	}

	s.metrics.AccidentsReported.Inc()
	slog.Info("accident reported", "accident_id", acc.ID, "user_id", callerID)
	return acc, nil
}

// Edit applies a partial update to a report owned by the caller. Only
// supplied fields change; applying the same edit twice yields the same
// final state.
func (s *AccidentService) Edit(ctx context.Context, callerID string, in EditAccidentInput) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, in.AccidentID)
	if err != nil {
		return nil, err
	}

	if in.Date != nil {
		acc.Date = *in.Date
	}
	applyString(&acc.Time, in.Time)
	applyString(&acc.Location, in.Location)
	applyString(&acc.Speed, in.Speed)
	applyString(&acc.WeatherConditions, in.WeatherConditions)
	applyString(&acc.CrashDescription, in.CrashDescription)

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not update accident", err)
	}

	return acc, nil
}

// Delete removes a report owned by the caller and returns the deleted
// snapshot.
func (s *AccidentService) Delete(ctx context.Context, callerID, accidentID string) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteAccident(ctx, accidentID); err != nil {
		return nil, apperr.Internal("Could not delete that accident", err)
	}

	slog.Info("accident deleted", "accident_id", accidentID, "user_id", callerID)
	return acc, nil
}

// AddPhoto appends a photo to a report owned by the caller.
func (s *AccidentService) AddPhoto(ctx context.Context, callerID, accidentID, photoURL string) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	acc.Photos = append(acc.Photos, models.Photo{URL: photoURL})

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not add photo to accident", err)
	}
	return acc, nil
}

// DeletePhoto removes every photo with the given URL from a report owned
// by the caller. Removing a URL that was just added returns the photo
// sequence to its prior state.
func (s *AccidentService) DeletePhoto(ctx context.Context, callerID, accidentID, photoURL string) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	kept := acc.Photos[:0]
	for _, p := range acc.Photos {
		if p.URL != photoURL {
			kept = append(kept, p)
		}
	}
	acc.Photos = kept

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not remove photo from accident", err)
	}
	return acc, nil
}

// AddWitness appends an embedded witness record to a report owned by the
// caller.
func (s *AccidentService) AddWitness(ctx context.Context, callerID, accidentID string, witness models.Witness) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	acc.Witnesses = append(acc.Witnesses, witness)

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not add witness to accident", err)
	}
	return acc, nil
}

// DeleteWitness removes every witness with the given phone number from a
// report owned by the caller. Embedded witnesses have no identity of
// their own, so phone-number equality is the removal key.
func (s *AccidentService) DeleteWitness(ctx context.Context, callerID, accidentID, phoneNumber string) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	kept := acc.Witnesses[:0]
	for _, w := range acc.Witnesses {
		if w.PhoneNumber != phoneNumber {
			kept = append(kept, w)
		}
	}
	acc.Witnesses = kept

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not remove witness from accident", err)
	}
	return acc, nil
}

// AddOtherVehicle appends an embedded vehicle record to a report owned by
// the caller.
func (s *AccidentService) AddOtherVehicle(ctx context.Context, callerID, accidentID string, vehicle models.Vehicle) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	acc.OtherVehicles = append(acc.OtherVehicles, vehicle)

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not add vehicle to accident", err)
	}
	return acc, nil
}

// DeleteOtherVehicle removes every vehicle with the given registration
// number from a report owned by the caller.
func (s *AccidentService) DeleteOtherVehicle(ctx context.Context, callerID, accidentID, registrationNumber string) (*models.Accident, error) {
	acc, err := s.owned(ctx, callerID, accidentID)
	if err != nil {
		return nil, err
	}

	kept := acc.OtherVehicles[:0]
	for _, v := range acc.OtherVehicles {
		if v.RegistrationNumber != registrationNumber {
			kept = append(kept, v)
		}
	}
	acc.OtherVehicles = kept

	if err := s.store.UpdateAccident(ctx, acc); err != nil {
		return nil, apperr.Internal("Could not remove vehicle from accident", err)
	}
	return acc, nil
}

// Find retrieves one report by ID. Missing reports are a soft miss.
func (s *AccidentService) Find(ctx context.Context, accidentID string) (*models.Accident, error) {
	acc, err := s.store.GetAccident(ctx, accidentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("Could not fetch accident", err)
	}
	return acc, nil
}

// All returns every report in the ledger.
func (s *AccidentService) All(ctx context.Context) ([]*models.Accident, error) {
	list, err := s.store.ListAccidents(ctx)
	if err != nil {
		return nil, apperr.Internal("Could not fetch accidents", err)
	}
	return list, nil
}

// AllMine returns the reports filed by the calling user.
func (s *AccidentService) AllMine(ctx context.Context, callerID string) ([]*models.Accident, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	list, err := s.store.ListAccidentsByUser(ctx, callerID)
	if err != nil {
		return nil, apperr.Internal("Could not fetch accidents", err)
	}
	return list, nil
}

// owned loads a report and checks that the caller filed it. A missing
// report and someone else's report produce the same "cannot find" error.
func (s *AccidentService) owned(ctx context.Context, callerID, accidentID string) (*models.Accident, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	acc, err := s.store.GetAccident(ctx, accidentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Cannot find this accident")
		}
		return nil, apperr.Internal("Could not fetch accident", err)
	}
	if acc.UserID != callerID {
		return nil, apperr.NotFound("Cannot find this accident")
	}

	return acc, nil
}
