// internal/workers/underwriting/run-analysis/handler_test.go
package runanalysis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "mortgage-workers/internal/common/errors"
	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/models"
	"mortgage-workers/internal/store"
	"mortgage-workers/internal/underwriting"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeLoader struct {
	snapshot *models.ApplicationSnapshot
	err      error
}

func (f *fakeLoader) GetSnapshot(_ context.Context, _ string) (*models.ApplicationSnapshot, error) {
	return f.snapshot, f.err
}

type fakeWriter struct {
	statuses []models.AnalysisStatus
}

func (f *fakeWriter) SaveAnalysis(_ context.Context, _ *underwriting.UnderwritingAnalysis) error {
	return nil
}

func (f *fakeWriter) SetAnalysisStatus(_ context.Context, _ string, status models.AnalysisStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func createTestSnapshot() *models.ApplicationSnapshot {
	return &models.ApplicationSnapshot{
		ID:                  "app-001",
		ApplicantID:         "applicant-001",
		CreditScore:         750,
		MonthlyIncome:       10000,
		MonthlyDebtPayments: 2000,
		LoanAmount:          375000,
		PropertyValue:       500000,
		EmploymentHistory: []models.EmploymentRecord{
			{Employer: "Acme Corp", StartDate: time.Now().AddDate(-6, 0, 0), Current: true},
		},
		Assets: []models.Asset{
			{Type: "savings", Value: 100000},
		},
		Documents: []models.DocumentRef{
			{ID: "doc-001", Status: models.DocumentStatusVerified},
		},
	}
}

func newTestHandler(loader *fakeLoader) *Handler {
	calc := underwriting.NewCalculator(underwriting.DefaultScoringThresholds())
	service := underwriting.NewService(
		loader,
		&fakeWriter{},
		nil,
		nil,
		calc,
		underwriting.NewScorer(),
		underwriting.NewComplianceChecker(underwriting.DefaultComplianceThresholds(), calc),
		logger.NewNoOpLogger(),
	)
	return NewHandler(&Config{Timeout: 5 * time.Second}, service, logger.NewNoOpLogger())
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := newTestHandler(&fakeLoader{snapshot: createTestSnapshot()})

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001"})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "app-001", output.ApplicationID)
	assert.Equal(t, 100, output.RiskScore)
	assert.Equal(t, 100, output.Confidence)
	assert.Len(t, output.Factors, 5)
	assert.True(t, output.Compliance.Eligible)
	assert.NotEmpty(t, output.AnalyzedAt)

	_, parseErr := time.Parse(time.RFC3339, output.AnalyzedAt)
	assert.NoError(t, parseErr)
}

func TestHandler_Execute_ApplicationNotFound(t *testing.T) {
	loadErr := fmt.Errorf("%w: missing", store.ErrApplicationNotFound)
	handler := newTestHandler(&fakeLoader{err: loadErr})

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "missing"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
}

func TestToStandardError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		expected  cerrors.ErrorCode
		retryable bool
	}{
		{
			name:      "wrapped not-found maps to business error",
			err:       fmt.Errorf("%w: app-404", store.ErrApplicationNotFound),
			expected:  cerrors.ErrCodeApplicationNotFound,
			retryable: false,
		},
		{
			name:      "any other failure maps to analysis failure",
			err:       fmt.Errorf("persist analysis: connection reset"),
			expected:  cerrors.ErrCodeAnalysisFailed,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := toStandardError("app-404", tt.err)
			assert.Equal(t, tt.expected, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)

			bpmnErr := cerrors.ConvertToBPMNError(stdErr)
			assert.Equal(t, string(tt.expected), bpmnErr.Code)
			assert.Zero(t, bpmnErr.Retries, "business errors carry no retry budget")
		})
	}
}
