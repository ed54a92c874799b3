// internal/workers/documents/process-document/handler_test.go
package processdocument

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "mortgage-workers/internal/common/errors"
	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/docengine"
	"mortgage-workers/internal/documents"
	"mortgage-workers/internal/extraction"
	"mortgage-workers/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeWriter struct {
	savedType string
	failures  []string
	markErr   error
}

func (f *fakeWriter) MarkProcessing(_ context.Context, _ string) error {
	return f.markErr
}

func (f *fakeWriter) SaveExtraction(_ context.Context, _, documentType string, _ float64, _ []byte) error {
	f.savedType = documentType
	return nil
}

func (f *fakeWriter) MarkFailed(_ context.Context, _, message string) error {
	f.failures = append(f.failures, message)
	return nil
}

type stubEngine struct {
	name   string
	result *docengine.EngineResult
	err    error
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Extract(_ context.Context, _ []byte) (*docengine.EngineResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestHandler(writer *fakeWriter, engineA, engineB docengine.Engine) *Handler {
	reconciler := docengine.NewReconciler(engineA, engineB, time.Second, logger.NewNoOpLogger())
	service := documents.NewService(writer, reconciler, logger.NewNoOpLogger())
	return NewHandler(&Config{Timeout: 5 * time.Second}, service, logger.NewNoOpLogger())
}

func stubResult(engine string, confidence float64) *docengine.EngineResult {
	return &docengine.EngineResult{
		Engine:       engine,
		DocumentType: extraction.DocTypeBankStatement,
		Fields: extraction.BankStatementFields{
			BankName:    "First National Bank",
			Deposits:    []extraction.Transaction{},
			Withdrawals: []extraction.Transaction{},
		},
		Confidence: confidence,
	}
}

func encodeContent(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	writer := &fakeWriter{}
	handler := newTestHandler(writer,
		&stubEngine{name: "vision", result: stubResult("vision", 0.7)},
		&stubEngine{name: "template", result: stubResult("template", 0.95)},
	)

	input := &Input{DocumentID: "doc-001", ContentBase64: encodeContent("statement bytes")}
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "doc-001", output.DocumentID)
	assert.Equal(t, "BANK_STATEMENT", output.DocumentType)
	assert.Equal(t, "template", output.SelectedEngine)
	assert.InDelta(t, 0.95, output.Confidence, 0.0001)
	assert.Equal(t, "completed", output.ProcessingStatus)
	assert.Equal(t, "BANK_STATEMENT", writer.savedType)
}

func TestHandler_Execute_InvalidBase64(t *testing.T) {
	handler := newTestHandler(&fakeWriter{},
		&stubEngine{name: "vision", result: stubResult("vision", 0.7)},
		&stubEngine{name: "template", result: stubResult("template", 0.9)},
	)

	input := &Input{DocumentID: "doc-001", ContentBase64: "!!!not base64!!!"}
	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode document content")
}

func TestHandler_Execute_EngineFailure(t *testing.T) {
	writer := &fakeWriter{}
	handler := newTestHandler(writer,
		&stubEngine{name: "vision", err: errors.New("model overloaded")},
		&stubEngine{name: "template", result: stubResult("template", 0.9)},
	)

	input := &Input{DocumentID: "doc-002", ContentBase64: encodeContent("statement bytes")}
	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	require.Error(t, err)
	require.Len(t, writer.failures, 1)
	assert.Contains(t, writer.failures[0], "model overloaded")
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
			err:       fmt.Errorf("%w: doc-404", store.ErrDocumentNotFound),
			expected:  cerrors.ErrCodeDocumentNotFound,
			retryable: false,
		},
		{
			name: "timed-out engine maps to engine timeout",
			err: fmt.Errorf("reconcile document doc-001: %w", &docengine.EngineError{
				Engine:  "vision",
				Timeout: true,
				Err:     context.DeadlineExceeded,
			}),
			expected:  cerrors.ErrCodeEngineTimeout,
			retryable: true,
		},
		{
			name: "failed engine maps to engine failure",
			err: fmt.Errorf("reconcile document doc-001: %w", &docengine.EngineError{
				Engine: "template",
				Err:    errors.New("ocr service unavailable"),
			}),
			expected:  cerrors.ErrCodeEngineFailure,
			retryable: true,
		},
		{
			name:      "outer deadline maps to engine timeout",
			err:       fmt.Errorf("reconcile document doc-001: %w", context.DeadlineExceeded),
			expected:  cerrors.ErrCodeEngineTimeout,
			retryable: true,
		},
		{
			name:      "rejected payload maps to validation failure",
			err:       fmt.Errorf("validate extracted document doc-001: %w", documents.ErrPayloadInvalid),
			expected:  cerrors.ErrCodePayloadValidationFailed,
			retryable: false,
		},
		{
			name:      "anything else maps to processing failure",
			err:       errors.New("marshal extracted document doc-001: bad state"),
			expected:  cerrors.ErrCodeProcessingFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdErr := toStandardError("doc-001", tt.err)
			assert.Equal(t, tt.expected, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}
