package docengine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"mortgage-workers/internal/extraction"
)

const visionEngineName = "vision"

const visionSystemPrompt = `You are a mortgage document extraction engine.
Classify the document as one of WAGE_STATEMENT, PAY_STUB, BANK_STATEMENT or UNKNOWN
and extract its fields. Respond with a single JSON object:
{"documentType": "...", "confidence": 0.0-1.0, "fields": {...}}
Field keys per type:
- WAGE_STATEMENT: employerId, employerName, employeeSsn, employeeName, wagesTips,
  federalTaxWithheld, socialSecurityWages, medicareWages, stateWages, stateTaxWithheld, taxYear
- PAY_STUB: employerName, employeeName, payPeriodStart, payPeriodEnd, grossPay, netPay,
  ytdGrossPay, deductions (array of {label, amount, ytdAmount})
- BANK_STATEMENT: bankName, accountHolder, accountLast4, periodStart, periodEnd,
  beginningBalance, endingBalance, deposits and withdrawals (arrays of {date, description, amount})
Use 0 for numbers and "" for strings you cannot read. Never invent values.`

// ChatCompleter is the slice of the OpenAI client the engine uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// VisionEngine extracts fields by sending the document image to a vision
// model.
type VisionEngine struct {
	client ChatCompleter
	model  string
}

func NewVisionEngine(client ChatCompleter, model string) *VisionEngine {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &VisionEngine{client: client, model: model}
}

func (e *VisionEngine) Name() string { return visionEngineName }

func (e *VisionEngine) Extract(ctx context.Context, content []byte) (*EngineResult, error) {
	imageURL := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(content))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: visionSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision model call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision model returned no choices")
	}

	return parseVisionResponse(resp.Choices[0].Message.Content)
}

func parseVisionResponse(content string) (*EngineResult, error) {
	var envelope struct {
		DocumentType string          `json:"documentType"`
		Confidence   float64         `json:"confidence"`
		Fields       json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}

	docType := extraction.DocumentType(strings.ToUpper(strings.TrimSpace(envelope.DocumentType)))
	fields, err := decodeFields(docType, envelope.Fields)
	if err != nil {
		return nil, err
	}

	confidence := envelope.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return &EngineResult{
		Engine:       visionEngineName,
		DocumentType: fields.DocumentType(),
		Fields:       fields,
		Confidence:   confidence,
	}, nil
}

func decodeFields(docType extraction.DocumentType, raw json.RawMessage) (extraction.Fields, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	switch docType {
	case extraction.DocTypeWageStatement:
		var fields extraction.WageStatementFields
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode wage statement fields: %w", err)
		}
		return fields, nil
	case extraction.DocTypePayStub:
		var fields extraction.PayStubFields
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode pay stub fields: %w", err)
		}
		return fields, nil
	case extraction.DocTypeBankStatement:
		var fields extraction.BankStatementFields
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode bank statement fields: %w", err)
		}
		return fields, nil
	default:
		return extraction.UnknownFields{}, nil
	}
}
