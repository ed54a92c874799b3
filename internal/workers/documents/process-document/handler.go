// internal/workers/documents/process-document/handler.go
package processdocument

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cerrors "mortgage-workers/internal/common/errors"
	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/common/metrics"
	"mortgage-workers/internal/docengine"
	"mortgage-workers/internal/documents"
	"mortgage-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "process-document"
)

type Handler struct {
	service *documents.Service
	timeout time.Duration
	logger  logger.Logger
}

func NewHandler(config *Config, service *documents.Service, log logger.Logger) *Handler {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		service: service,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, cerrors.NewParseError(fmt.Sprintf("parse input: %v", err)))
		return
	}
	if input.DocumentID == "" {
		h.failJob(client, job, cerrors.NewParseError("documentId is required"))
		return
	}
	if input.ContentBase64 == "" {
		h.failJob(client, job, cerrors.NewParseError("contentBase64 is required"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, toStandardError(input.DocumentID, err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	content, err := base64.StdEncoding.DecodeString(input.ContentBase64)
	if err != nil {
		return nil, fmt.Errorf("decode document content: %w", err)
	}

	extracted, err := h.service.ProcessDocument(ctx, input.DocumentID, content)
	if err != nil {
		return nil, err
	}

	return &Output{
		DocumentID:       input.DocumentID,
		DocumentType:     string(extracted.DocumentType),
		Confidence:       extracted.Confidence,
		SelectedEngine:   extracted.SelectedEngine,
		ProcessingStatus: "completed",
	}, nil
}

func toStandardError(documentID string, err error) *cerrors.StandardError {
	var engineErr *docengine.EngineError

	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		return cerrors.NewDocumentNotFoundError(documentID)
	case errors.As(err, &engineErr):
		if engineErr.Timeout {
			return cerrors.NewEngineTimeoutError(engineErr.Engine)
		}
		return cerrors.NewEngineFailureError(engineErr.Engine, engineErr.Err)
	case errors.Is(err, context.DeadlineExceeded):
		return cerrors.NewEngineTimeoutError("reconciler")
	case errors.Is(err, documents.ErrPayloadInvalid):
		return cerrors.NewPayloadValidationFailedError(err.Error())
	default:
		return cerrors.NewProcessingFailedError(documentID, err)
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

// failJob normalizes every failure through the standard error machinery:
// transient failures go back to the broker with a reduced retry budget,
// business errors become BPMN errors for the process to route.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *cerrors.StandardError) {
	bpmnErr := cerrors.ConvertToBPMNError(stdErr)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"errorDetails": bpmnErr.Details,
		"retryable":    bpmnErr.Retryable,
		"retries":      bpmnErr.Retries,
	})

	if bpmnErr.Retryable && job.Retries > 1 {
		h.retryJob(client, job, bpmnErr)
		return
	}
	h.throwError(client, job, bpmnErr)
}

func (h *Handler) retryJob(client worker.JobClient, job entities.Job, bpmnErr *cerrors.BPMNError) {
	retries := int32(bpmnErr.Retries)
	if job.Retries-1 < retries {
		retries = job.Retries - 1
	}

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	if varCmd, varErr := cmd.VariablesFromMap(bpmnErr.ToErrorVariables()); varErr == nil {
		if _, err := varCmd.Send(context.Background()); err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{"error": err})
		}
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{"error": err})
	}
}

func (h *Handler) throwError(client worker.JobClient, job entities.Job, bpmnErr *cerrors.BPMNError) {
	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
