package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/docengine"
)

// DocumentWriter persists document processing state transitions.
type DocumentWriter interface {
	MarkProcessing(ctx context.Context, documentID string) error
	SaveExtraction(ctx context.Context, documentID, documentType string, confidence float64, payload []byte) error
	MarkFailed(ctx context.Context, documentID, message string) error
}

// Service processes one uploaded document: it reconciles the two
// extraction engines and persists the outcome. Status transitions
// (processing -> completed|failed) are observable side effects; failures
// append to the document's error history.
type Service struct {
	store      DocumentWriter
	reconciler *docengine.Reconciler
	logger     logger.Logger
}

func NewService(store DocumentWriter, reconciler *docengine.Reconciler, log logger.Logger) *Service {
	return &Service{
		store:      store,
		reconciler: reconciler,
		logger:     log.WithFields(map[string]interface{}{"component": "documents"}),
	}
}

// ProcessDocument runs the full extraction pipeline for one document.
func (s *Service) ProcessDocument(ctx context.Context, documentID string, content []byte) (*docengine.ExtractedDocument, error) {
	if err := s.store.MarkProcessing(ctx, documentID); err != nil {
		return nil, err
	}

	extracted, err := s.reconciler.Reconcile(ctx, content)
	if err != nil {
		s.recordFailure(ctx, documentID, err)
		return nil, fmt.Errorf("reconcile document %s: %w", documentID, err)
	}

	payload, err := json.Marshal(extracted)
	if err != nil {
		s.recordFailure(ctx, documentID, err)
		return nil, fmt.Errorf("marshal extracted document %s: %w", documentID, err)
	}

	if err := ValidatePayload(payload); err != nil {
		s.recordFailure(ctx, documentID, err)
		return nil, fmt.Errorf("validate extracted document %s: %w", documentID, err)
	}

	if err := s.store.SaveExtraction(ctx, documentID, string(extracted.DocumentType), extracted.Confidence, payload); err != nil {
		s.recordFailure(ctx, documentID, err)
		return nil, fmt.Errorf("persist extracted document %s: %w", documentID, err)
	}

	s.logger.Info("document processed", map[string]interface{}{
		"documentId":   documentID,
		"documentType": extracted.DocumentType,
		"confidence":   extracted.Confidence,
	})

	return extracted, nil
}

func (s *Service) recordFailure(ctx context.Context, documentID string, cause error) {
	if err := s.store.MarkFailed(ctx, documentID, cause.Error()); err != nil {
		s.logger.Error("failed to record document failure", map[string]interface{}{
			"documentId": documentID,
			"error":      err,
		})
	}
	s.logger.Error("document processing failed", map[string]interface{}{
		"documentId": documentID,
		"error":      cause,
	})
}
