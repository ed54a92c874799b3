package docengine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mortgage-workers/internal/extraction"
)

const templateEngineName = "template"

// TemplateEngine extracts fields by running the document through an OCR
// text service and applying the pattern tables per document type.
type TemplateEngine struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	extractor *extraction.Extractor
}

func NewTemplateEngine(baseURL, apiKey string, client *http.Client) *TemplateEngine {
	if client == nil {
		client = &http.Client{}
	}
	return &TemplateEngine{
		baseURL:   baseURL,
		apiKey:    apiKey,
		client:    client,
		extractor: extraction.NewExtractor(),
	}
}

func (e *TemplateEngine) Name() string { return templateEngineName }

func (e *TemplateEngine) Extract(ctx context.Context, content []byte) (*EngineResult, error) {
	lines, ocrConfidence, err := e.recognizeText(ctx, content)
	if err != nil {
		return nil, err
	}

	fields := e.extractor.Extract(lines)

	return &EngineResult{
		Engine:       templateEngineName,
		DocumentType: fields.DocumentType(),
		Fields:       fields,
		Confidence:   ocrConfidence,
		RawText:      strings.Join(lines, "\n"),
	}, nil
}

func (e *TemplateEngine) recognizeText(ctx context.Context, content []byte) ([]string, float64, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"content": base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("encode ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/ocr/text", bytes.NewReader(requestBody))
	if err != nil {
		return nil, 0, fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("ocr service call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("ocr service status %d", resp.StatusCode)
	}

	var ocrResponse struct {
		Lines      []string `json:"lines"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ocrResponse); err != nil {
		return nil, 0, fmt.Errorf("decode ocr response: %w", err)
	}

	confidence := ocrResponse.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return ocrResponse.Lines, confidence, nil
}
