package docengine

import (
	"context"
	"fmt"

	"mortgage-workers/internal/extraction"
)

// Engine is one independent extraction engine running over raw document
// bytes. Engines are side-effect free and safe to call concurrently.
type Engine interface {
	Name() string
	Extract(ctx context.Context, content []byte) (*EngineResult, error)
}

// EngineError reports which engine call failed and whether it ran out of
// time, so callers can map the failure to the right downstream handling.
type EngineError struct {
	Engine  string
	Timeout bool
	Err     error
}

func (e *EngineError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("engine %s timed out: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("engine %s failed: %v", e.Engine, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// EngineResult is the raw output of a single engine, retained for audit
// even when the other engine's result is selected.
type EngineResult struct {
	Engine       string                  `json:"engine"`
	DocumentType extraction.DocumentType `json:"documentType"`
	Fields       extraction.Fields       `json:"fields"`
	Confidence   float64                 `json:"confidence"`
	RawText      string                  `json:"rawText,omitempty"`
}

// Sources holds both engine results for audit; neither is ever discarded.
type Sources struct {
	EngineA *EngineResult `json:"engineA"`
	EngineB *EngineResult `json:"engineB"`
}

// ExtractedDocument is the reconciled result for one document. It is
// immutable once produced; a re-run replaces it wholesale.
type ExtractedDocument struct {
	DocumentType   extraction.DocumentType `json:"documentType"`
	Fields         extraction.Fields       `json:"extractedData"`
	Confidence     float64                 `json:"confidence"`
	SelectedEngine string                  `json:"selectedEngine"`
	Sources        Sources                 `json:"sources"`
}
