package docengine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/common/metrics"
	"mortgage-workers/internal/extraction"
)

// typeMismatchPenalty scales the selected confidence when the two engines
// disagree on the document type.
const typeMismatchPenalty = 0.75

// DefaultEngineTimeout bounds each engine call; a timeout is treated
// identically to an engine failure.
const DefaultEngineTimeout = 20 * time.Second

// Reconciler runs two independent engines over the same document bytes and
// selects a single result. Both engines must succeed: a single-source
// result has materially lower reliability, so the operation fails as a
// unit rather than degrade silently.
type Reconciler struct {
	engineA Engine
	engineB Engine
	timeout time.Duration
	logger  logger.Logger
}

func NewReconciler(engineA, engineB Engine, timeout time.Duration, log logger.Logger) *Reconciler {
	if timeout <= 0 {
		timeout = DefaultEngineTimeout
	}
	return &Reconciler{
		engineA: engineA,
		engineB: engineB,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "reconciler"}),
	}
}

// Reconcile launches both engine calls concurrently, joins them, and
// merges the results. The strictly higher-confidence result is selected;
// the other is retained under Sources for audit.
func (r *Reconciler) Reconcile(ctx context.Context, content []byte) (*ExtractedDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var resultA, resultB *EngineResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resultA, err = r.runEngine(gctx, r.engineA, content)
		return err
	})
	g.Go(func() error {
		var err error
		resultB, err = r.runEngine(gctx, r.engineB, content)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := resultA
	if resultB.Confidence > resultA.Confidence {
		selected = resultB
	}

	confidence := selected.Confidence
	if resultA.DocumentType != resultB.DocumentType {
		confidence *= typeMismatchPenalty
		r.logger.Warn("engines disagree on document type", map[string]interface{}{
			"engineA": resultA.DocumentType,
			"engineB": resultB.DocumentType,
		})
	}

	r.logger.Info("document reconciled", map[string]interface{}{
		"selected":     selected.Engine,
		"documentType": selected.DocumentType,
		"confidence":   confidence,
	})

	return &ExtractedDocument{
		DocumentType:   selected.DocumentType,
		Fields:         selected.Fields,
		Confidence:     confidence,
		SelectedEngine: selected.Engine,
		Sources: Sources{
			EngineA: resultA,
			EngineB: resultB,
		},
	}, nil
}

func (r *Reconciler) runEngine(ctx context.Context, engine Engine, content []byte) (*EngineResult, error) {
	start := time.Now()
	result, err := engine.Extract(ctx, content)
	metrics.ExtractionEngineDuration.WithLabelValues(engine.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExtractionEngineFailures.WithLabelValues(engine.Name()).Inc()
		return nil, &EngineError{
			Engine:  engine.Name(),
			Timeout: ctx.Err() == context.DeadlineExceeded,
			Err:     err,
		}
	}
	if result.DocumentType == "" {
		result.DocumentType = extraction.DocTypeUnknown
	}
	return result, nil
}
