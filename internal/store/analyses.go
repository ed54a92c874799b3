package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mortgage-workers/internal/models"
	"mortgage-workers/internal/underwriting"
)

// AnalysisStore persists underwriting analyses. The store retains only the
// latest analysis per application; saving overwrites any prior row.
type AnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// SaveAnalysis upserts the analysis for its application and marks the
// application's analysis status COMPLETED in the same statement batch.
func (s *AnalysisStore) SaveAnalysis(ctx context.Context, analysis *underwriting.UnderwritingAnalysis) error {
	factorsJSON, err := marshalJSON(analysis.Factors)
	if err != nil {
		return err
	}
	recommendationsJSON, err := marshalJSON(analysis.Recommendations)
	if err != nil {
		return err
	}
	warningsJSON, err := marshalJSON(analysis.Warnings)
	if err != nil {
		return err
	}
	conditionsJSON, err := marshalJSON(analysis.Conditions)
	if err != nil {
		return err
	}
	complianceJSON, err := marshalJSON(analysis.Compliance)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO underwriting_analyses (
			application_id, risk_score, confidence, factors,
			recommendations, warnings, conditions, compliance, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (application_id) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			confidence = EXCLUDED.confidence,
			factors = EXCLUDED.factors,
			recommendations = EXCLUDED.recommendations,
			warnings = EXCLUDED.warnings,
			conditions = EXCLUDED.conditions,
			compliance = EXCLUDED.compliance,
			created_at = EXCLUDED.created_at`,
		analysis.ApplicationID,
		analysis.RiskScore,
		analysis.Confidence,
		factorsJSON,
		recommendationsJSON,
		warningsJSON,
		conditionsJSON,
		complianceJSON,
		analysis.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	return s.SetAnalysisStatus(ctx, analysis.ApplicationID, models.AnalysisStatusCompleted)
}

// SetAnalysisStatus records the orchestration state transition on the
// application row.
func (s *AnalysisStore) SetAnalysisStatus(ctx context.Context, applicationID string, status models.AnalysisStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET analysis_status = $2, updated_at = $3
		WHERE id = $1`,
		applicationID, string(status), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set analysis status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrApplicationNotFound, applicationID)
	}
	return nil
}
