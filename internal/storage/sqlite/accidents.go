package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crashlog/internal/models"
	"crashlog/internal/storage"
)

const accidentColumns = "id, user_id, date, time, location, speed, weather_conditions, crash_description, photos, witnesses, other_vehicles"

// CreateAccident inserts a new accident report. The embedded photo, witness,
// and vehicle collections are serialized as JSON columns.
func (s *SQLiteStore) CreateAccident(ctx context.Context, acc *models.Accident) error {
	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	if acc.Date.IsZero() {
		acc.Date = time.Now().UTC()
	}

	photos, witnesses, vehicles, err := marshalCollections(acc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO accidents ("+accidentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		acc.ID, acc.UserID, acc.Date.Unix(), acc.Time,
		acc.Location, acc.Speed, acc.WeatherConditions, acc.CrashDescription,
		photos, witnesses, vehicles,
	)
	if err != nil {
		return fmt.Errorf("failed to create accident: %w", err)
	}

	return nil
}

// GetAccident retrieves an accident report by ID.
func (s *SQLiteStore) GetAccident(ctx context.Context, id string) (*models.Accident, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accidentColumns+" FROM accidents WHERE id = ?", id)

	acc, err := scanAccident(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get accident: %w", err)
	}

	return acc, nil
}

// UpdateAccident overwrites an existing accident report, including its
// embedded collections.
func (s *SQLiteStore) UpdateAccident(ctx context.Context, acc *models.Accident) error {
	photos, witnesses, vehicles, err := marshalCollections(acc)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE accidents
		 SET user_id = ?, date = ?, time = ?, location = ?, speed = ?,
		     weather_conditions = ?, crash_description = ?,
		     photos = ?, witnesses = ?, other_vehicles = ?
		 WHERE id = ?`,
		acc.UserID, acc.Date.Unix(), acc.Time, acc.Location, acc.Speed,
		acc.WeatherConditions, acc.CrashDescription,
		photos, witnesses, vehicles,
		acc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update accident: %w", err)
	}
	return checkAffected(res)
}

// DeleteAccident removes an accident report by ID.
func (s *SQLiteStore) DeleteAccident(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accidents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete accident: %w", err)
	}
	return checkAffected(res)
}

// ListAccidents returns every accident report in creation order.
func (s *SQLiteStore) ListAccidents(ctx context.Context) ([]*models.Accident, error) {
	return s.listAccidents(ctx,
		"SELECT "+accidentColumns+" FROM accidents ORDER BY rowid")
}

// ListAccidentsByUser returns the reports filed by the given user.
func (s *SQLiteStore) ListAccidentsByUser(ctx context.Context, userID string) ([]*models.Accident, error) {
	return s.listAccidents(ctx,
		"SELECT "+accidentColumns+" FROM accidents WHERE user_id = ? ORDER BY rowid",
		userID)
}

func (s *SQLiteStore) listAccidents(ctx context.Context, query string, args ...any) ([]*models.Accident, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accidents: %w", err)
	}
	defer rows.Close()

	var result []*models.Accident
	for rows.Next() {
		acc, err := scanAccident(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accident: %w", err)
		}
		result = append(result, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accidents: %w", err)
	}

	return result, nil
}

func marshalCollections(acc *models.Accident) (photos, witnesses, vehicles []byte, err error) {
	if photos, err = json.Marshal(emptyIfNil(acc.Photos)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal photos: %w", err)
	}
	if witnesses, err = json.Marshal(emptyIfNil(acc.Witnesses)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal witnesses: %w", err)
	}
	if vehicles, err = json.Marshal(emptyIfNil(acc.OtherVehicles)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal other vehicles: %w", err)
	}
	return photos, witnesses, vehicles, nil
}

// emptyIfNil keeps nil slices from serializing as JSON null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanAccident(scan func(dest ...any) error) (*models.Accident, error) {
	acc := &models.Accident{}
	var date int64
	var photos, witnesses, vehicles []byte

	err := scan(
		&acc.ID, &acc.UserID, &date, &acc.Time,
		&acc.Location, &acc.Speed, &acc.WeatherConditions, &acc.CrashDescription,
		&photos, &witnesses, &vehicles,
	)
	if err != nil {
		return nil, err
	}

	acc.Date = time.Unix(date, 0).UTC()
	if err := json.Unmarshal(photos, &acc.Photos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal photos: %w", err)
	}
	if err := json.Unmarshal(witnesses, &acc.Witnesses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal witnesses: %w", err)
	}
	if err := json.Unmarshal(vehicles, &acc.OtherVehicles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal other vehicles: %w", err)
	}

	return acc, nil
}
