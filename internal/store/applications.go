package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"mortgage-workers/internal/models"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")
)

// ApplicationStore reads application snapshots for the underwriting engine.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// GetSnapshot loads the immutable application view consumed by the engine.
// Employment history is returned most-recent first.
func (s *ApplicationStore) GetSnapshot(ctx context.Context, applicationID string) (*models.ApplicationSnapshot, error) {
	snapshot := &models.ApplicationSnapshot{ID: applicationID}

	err := s.db.QueryRowContext(ctx, `
		SELECT applicant_id, credit_score, monthly_income, monthly_debt_payments,
		       loan_amount, property_value
		FROM applications
		WHERE id = $1`, applicationID).Scan(
		&snapshot.ApplicantID,
		&snapshot.CreditScore,
		&snapshot.MonthlyIncome,
		&snapshot.MonthlyDebtPayments,
		&snapshot.LoanAmount,
		&snapshot.PropertyValue,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, applicationID)
		}
		return nil, fmt.Errorf("load application: %w", err)
	}

	if err := s.loadEmployment(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.loadAssets(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.loadDocuments(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *ApplicationStore) loadEmployment(ctx context.Context, snapshot *models.ApplicationSnapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employer, position, start_date, current
		FROM employment_history
		WHERE application_id = $1
		ORDER BY start_date DESC`, snapshot.ID)
	if err != nil {
		return fmt.Errorf("load employment history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.EmploymentRecord
		if err := rows.Scan(&record.Employer, &record.Position, &record.StartDate, &record.Current); err != nil {
			return fmt.Errorf("scan employment record: %w", err)
		}
		snapshot.EmploymentHistory = append(snapshot.EmploymentHistory, record)
	}
	return rows.Err()
}

func (s *ApplicationStore) loadAssets(ctx context.Context, snapshot *models.ApplicationSnapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT asset_type, description, value
		FROM assets
		WHERE application_id = $1
		ORDER BY created_at`, snapshot.ID)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(&asset.Type, &asset.Description, &asset.Value); err != nil {
			return fmt.Errorf("scan asset: %w", err)
		}
		snapshot.Assets = append(snapshot.Assets, asset)
	}
	return rows.Err()
}

func (s *ApplicationStore) loadDocuments(ctx context.Context, snapshot *models.ApplicationSnapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_type, status
		FROM documents
		WHERE application_id = $1
		ORDER BY created_at`, snapshot.ID)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc models.DocumentRef
		if err := rows.Scan(&doc.ID, &doc.Type, &doc.Status); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		snapshot.Documents = append(snapshot.Documents, doc)
	}
	return rows.Err()
}

// marshalJSON is shared by the store writers for jsonb columns.
func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return b, nil
}
