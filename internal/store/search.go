package store

import (
	"context"
	"encoding/json"
	"fmt"

	"mortgage-workers/internal/common/database"
	"mortgage-workers/internal/underwriting"
)

// AnalysisIndexer pushes completed analyses into Elasticsearch so the
// dashboard layer can search and aggregate them.
type AnalysisIndexer struct {
	es    *database.ElasticsearchClient
	index string
}

func NewAnalysisIndexer(es *database.ElasticsearchClient, index string) *AnalysisIndexer {
	return &AnalysisIndexer{es: es, index: index}
}

// IndexAnalysis indexes the analysis keyed by application id, overwriting
// any prior document for that application.
func (i *AnalysisIndexer) IndexAnalysis(ctx context.Context, analysis *underwriting.UnderwritingAnalysis) error {
	body, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis for indexing: %w", err)
	}
	return i.es.Index(ctx, i.index, analysis.ApplicationID, body)
}
