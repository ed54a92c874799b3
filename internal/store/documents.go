package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mortgage-workers/internal/models"
)

// DocumentStore persists document processing state. Errors accumulate in an
// append-only list so repeated failures keep their history.
type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// MarkProcessing transitions the document into the processing state.
func (s *DocumentStore) MarkProcessing(ctx context.Context, documentID string) error {
	return s.setStatus(ctx, documentID, models.ProcessingStatusProcessing)
}

// SaveExtraction stores the reconciled payload and completes processing.
// A re-run replaces the payload wholesale.
func (s *DocumentStore) SaveExtraction(ctx context.Context, documentID, documentType string, confidence float64, payload []byte) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET processing_status = $2,
		    document_type = $3,
		    extraction_confidence = $4,
		    extracted_data = $5,
		    updated_at = $6
		WHERE id = $1`,
		documentID,
		string(models.ProcessingStatusCompleted),
		documentType,
		confidence,
		payload,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save extraction: %w", err)
	}
	return s.requireRow(result, documentID)
}

// MarkFailed records a failed run, appending the error message to the
// document's error history.
func (s *DocumentStore) MarkFailed(ctx context.Context, documentID, message string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET processing_status = $2,
		    processing_errors = array_append(processing_errors, $3),
		    updated_at = $4
		WHERE id = $1`,
		documentID,
		string(models.ProcessingStatusFailed),
		message,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark document failed: %w", err)
	}
	return s.requireRow(result, documentID)
}

func (s *DocumentStore) setStatus(ctx context.Context, documentID string, status models.ProcessingStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET processing_status = $2, updated_at = $3
		WHERE id = $1`,
		documentID, string(status), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set processing status: %w", err)
	}
	return s.requireRow(result, documentID)
}

func (s *DocumentStore) requireRow(result sql.Result, documentID string) error {
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}
	return nil
}
