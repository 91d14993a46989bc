package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"crashlog/internal/models"
	"crashlog/internal/storage"
)

const insuranceColumns = "id, owner_kind, owner_id, car_registration_number, insurer_company, insurer_contact_number, insurance_policy, insurance_policy_number"

// CreateInsurance inserts a new insurance record.
func (s *SQLiteStore) CreateInsurance(ctx context.Context, ins *models.Insurance) error {
	if ins.ID == "" {
		ins.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO insurances ("+insuranceColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		ins.ID, ins.OwnerKind, ins.OwnerID,
		ins.CarRegistrationNumber, ins.InsurerCompany, ins.InsurerContactNumber,
		ins.InsurancePolicy, ins.InsurancePolicyNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to create insurance: %w", err)
	}

	return nil
}

// GetInsurance retrieves an insurance record by ID.
func (s *SQLiteStore) GetInsurance(ctx context.Context, id string) (*models.Insurance, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+insuranceColumns+" FROM insurances WHERE id = ?", id)

	ins, err := scanInsurance(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance: %w", err)
	}

	return ins, nil
}

// UpdateInsurance overwrites an existing insurance record.
func (s *SQLiteStore) UpdateInsurance(ctx context.Context, ins *models.Insurance) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE insurances
		 SET owner_kind = ?, owner_id = ?, car_registration_number = ?, insurer_company = ?,
		     insurer_contact_number = ?, insurance_policy = ?, insurance_policy_number = ?
		 WHERE id = ?`,
		ins.OwnerKind, ins.OwnerID,
		ins.CarRegistrationNumber, ins.InsurerCompany, ins.InsurerContactNumber,
		ins.InsurancePolicy, ins.InsurancePolicyNumber,
		ins.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update insurance: %w", err)
	}
	return checkAffected(res)
}

// DeleteInsurance removes an insurance record by ID.
func (s *SQLiteStore) DeleteInsurance(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM insurances WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete insurance: %w", err)
	}
	return checkAffected(res)
}

// ListInsurances returns every insurance record in creation order.
func (s *SQLiteStore) ListInsurances(ctx context.Context) ([]*models.Insurance, error) {
	return s.listInsurances(ctx,
		"SELECT "+insuranceColumns+" FROM insurances ORDER BY rowid")
}

// ListInsurancesByOwner returns the records owned by the given aggregate.
func (s *SQLiteStore) ListInsurancesByOwner(ctx context.Context, kind models.OwnerKind, ownerID string) ([]*models.Insurance, error) {
	return s.listInsurances(ctx,
		"SELECT "+insuranceColumns+" FROM insurances WHERE owner_kind = ? AND owner_id = ? ORDER BY rowid",
		kind, ownerID)
}

// DeleteAllInsurances wipes the insurance ledger.
func (s *SQLiteStore) DeleteAllInsurances(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM insurances"); err != nil {
		return fmt.Errorf("failed to delete all insurances: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listInsurances(ctx context.Context, query string, args ...any) ([]*models.Insurance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurances: %w", err)
	}
	defer rows.Close()

	var result []*models.Insurance
	for rows.Next() {
		ins, err := scanInsurance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insurance: %w", err)
		}
		result = append(result, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insurances: %w", err)
	}

	return result, nil
}

func scanInsurance(scan func(dest ...any) error) (*models.Insurance, error) {
	ins := &models.Insurance{}
	err := scan(
		&ins.ID, &ins.OwnerKind, &ins.OwnerID,
		&ins.CarRegistrationNumber, &ins.InsurerCompany, &ins.InsurerContactNumber,
		&ins.InsurancePolicy, &ins.InsurancePolicyNumber,
	)
	if err != nil {
		return nil, err
	}
	return ins, nil
}
