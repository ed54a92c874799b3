package underwriting

import (
	"context"
	"fmt"

	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/common/metrics"
	"mortgage-workers/internal/models"
)

// SnapshotLoader loads the immutable application view.
type SnapshotLoader interface {
	GetSnapshot(ctx context.Context, applicationID string) (*models.ApplicationSnapshot, error)
}

// AnalysisWriter persists analyses and orchestration state transitions.
type AnalysisWriter interface {
	SaveAnalysis(ctx context.Context, analysis *UnderwritingAnalysis) error
	SetAnalysisStatus(ctx context.Context, applicationID string, status models.AnalysisStatus) error
}

// AnalysisCache mirrors the latest analysis for dashboard reads. Cache
// failures never fail a run.
type AnalysisCache interface {
	PutAnalysis(ctx context.Context, analysis *UnderwritingAnalysis) error
	Invalidate(ctx context.Context, applicationID string) error
}

// AnalysisIndexer pushes completed analyses into the search index. Index
// failures never fail a run.
type AnalysisIndexer interface {
	IndexAnalysis(ctx context.Context, analysis *UnderwritingAnalysis) error
}

// Service sequences one underwriting run per trigger: load snapshot,
// compute factors, score, persist. Re-running with unchanged data simply
// overwrites the prior analysis; no partial analysis is ever persisted.
type Service struct {
	loader     SnapshotLoader
	writer     AnalysisWriter
	cache      AnalysisCache
	indexer    AnalysisIndexer
	calculator *Calculator
	scorer     *Scorer
	checker    *ComplianceChecker
	logger     logger.Logger
}

func NewService(
	loader SnapshotLoader,
	writer AnalysisWriter,
	cache AnalysisCache,
	indexer AnalysisIndexer,
	calculator *Calculator,
	scorer *Scorer,
	checker *ComplianceChecker,
	log logger.Logger,
) *Service {
	return &Service{
		loader:     loader,
		writer:     writer,
		cache:      cache,
		indexer:    indexer,
		calculator: calculator,
		scorer:     scorer,
		checker:    checker,
		logger:     log.WithFields(map[string]interface{}{"component": "underwriting"}),
	}
}

// RunAnalysis executes one full risk-assessment run for the application.
func (s *Service) RunAnalysis(ctx context.Context, applicationID string) (*UnderwritingAnalysis, error) {
	snapshot, err := s.loader.GetSnapshot(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.writer.SetAnalysisStatus(ctx, applicationID, models.AnalysisStatusRunning); err != nil {
		return nil, err
	}

	factors := s.calculator.ComputeFactors(snapshot)
	analysis := s.scorer.BuildAnalysis(snapshot, factors)
	analysis.Compliance = s.checker.Evaluate(snapshot)

	if err := s.writer.SaveAnalysis(ctx, analysis); err != nil {
		s.fail(ctx, applicationID, err)
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	metrics.AnalysisRiskScore.Observe(float64(analysis.RiskScore))

	// Cache and search index mirror the persisted row; neither is
	// authoritative, so failures only log.
	if s.cache != nil {
		if err := s.cache.PutAnalysis(ctx, analysis); err != nil {
			s.logger.Warn("analysis cache update failed", map[string]interface{}{
				"applicationId": applicationID,
				"error":         err,
			})
		}
	}
	if s.indexer != nil {
		if err := s.indexer.IndexAnalysis(ctx, analysis); err != nil {
			s.logger.Warn("analysis index update failed", map[string]interface{}{
				"applicationId": applicationID,
				"error":         err,
			})
		}
	}

	s.logger.Info("analysis completed", map[string]interface{}{
		"applicationId": applicationID,
		"riskScore":     analysis.RiskScore,
		"confidence":    analysis.Confidence,
		"highFactors":   analysis.HighImpactCount(),
	})

	return analysis, nil
}

func (s *Service) fail(ctx context.Context, applicationID string, cause error) {
	if err := s.writer.SetAnalysisStatus(ctx, applicationID, models.AnalysisStatusFailed); err != nil {
		s.logger.Error("failed to record FAILED status", map[string]interface{}{
			"applicationId": applicationID,
			"error":         err,
		})
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, applicationID); err != nil {
			s.logger.Warn("cache invalidation failed", map[string]interface{}{
				"applicationId": applicationID,
				"error":         err,
			})
		}
	}
	s.logger.Error("analysis run failed", map[string]interface{}{
		"applicationId": applicationID,
		"error":         cause,
	})
}
