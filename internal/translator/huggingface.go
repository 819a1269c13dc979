package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models"

	// DefaultHuggingFaceModel selects one Marian model per language pair.
	DefaultHuggingFaceModel = "Helsinki-NLP/opus-mt-{source}-{target}"

	DefaultHuggingFaceTimeout = 60 * time.Second

	maxResponseBytes = 10 << 20
)

// HuggingFaceService calls a hosted inference endpoint that serves one
// translation model per (source, target) pair.
type HuggingFaceService struct {
	baseURL       string
	modelTemplate string
	client        *http.Client
}

func NewHuggingFaceService(baseURL, modelTemplate string, timeout time.Duration) *HuggingFaceService {
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	if modelTemplate == "" {
		modelTemplate = DefaultHuggingFaceModel
	}
	if timeout <= 0 {
		timeout = DefaultHuggingFaceTimeout
	}
	return &HuggingFaceService{
		baseURL:       baseURL,
		modelTemplate: modelTemplate,
		client:        &http.Client{Timeout: timeout},
	}
}

func (s *HuggingFaceService) Name() string {
	return "huggingface"
}

// ModelID expands the model template for a language pair.
func (s *HuggingFaceService) ModelID(cfg ServiceConfig, sourceLang, targetLang string) string {
	tmpl := s.modelTemplate
	if cfg.Model != "" {
		tmpl = cfg.Model
	}
	return strings.NewReplacer("{source}", sourceLang, "{target}", targetLang).Replace(tmpl)
}

func (s *HuggingFaceService) endpoint(cfg ServiceConfig, model string) string {
	base := s.baseURL
	if cfg.BaseURL != "" {
		base = cfg.BaseURL
	}
	return strings.TrimRight(base, "/") + "/" + model
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfTranslation struct {
	TranslationText string `json:"translation_text"`
}

type hfLoading struct {
	Error         string          `json:"error"`
	EstimatedTime json.RawMessage `json:"estimated_time"`
}

func (s *HuggingFaceService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome {
	start := time.Now()
	model := s.ModelID(cfg, req.SourceLang, req.TargetLang)

	out := s.translate(ctx, cfg, req, model)
	out.Service = s.Name()
	out.Model = model
	out.Latency = time.Since(start)
	return out
}

func (s *HuggingFaceService) translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest, model string) Outcome {
	if out, ok := ValidateRequest(req); !ok {
		return out
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	jsonData, err := json.Marshal(hfRequest{Inputs: req.Text})
	if err != nil {
		return TransportError(fmt.Sprintf("failed to marshal request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(cfg, model), bytes.NewBuffer(jsonData))
	if err != nil {
		return TransportError(fmt.Sprintf("failed to create request: %v", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Credential))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return TransportError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return TransportError(fmt.Sprintf("failed to read response: %v", err))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeTranslations(body)
	case http.StatusServiceUnavailable:
		var loading hfLoading
		if err := json.Unmarshal(body, &loading); err != nil {
			return Pending(UnknownEstimate)
		}
		return Pending(rawEstimate(loading.EstimatedTime))
	default:
		return Failure(resp.StatusCode, string(body))
	}
}

// decodeTranslations takes the first hypothesis of a 200 response.
func decodeTranslations(body []byte) Outcome {
	if !json.Valid(body) {
		return TransportError("failed to decode response: invalid JSON")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return Failure(http.StatusOK, NoValidTranslation)
	}
	if bytes.Equal(bytes.TrimSpace(items[0]), []byte("null")) {
		return Failure(http.StatusOK, NoValidTranslation)
	}

	var first hfTranslation
	if err := json.Unmarshal(items[0], &first); err != nil {
		return TransportError(fmt.Sprintf("failed to decode response: %v", err))
	}
	return Success(first.TranslationText)
}

// rawEstimate keeps the service's value as sent: numbers keep their literal
// form, strings are unquoted.
func rawEstimate(raw json.RawMessage) string {
	v := strings.TrimSpace(string(raw))
	if v == "" || v == "null" {
		return UnknownEstimate
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return v
}

// IsAvailable checks configuration only; the endpoint itself is probed by
// the first real request.
func (s *HuggingFaceService) IsAvailable(ctx context.Context) error {
	if s.baseURL == "" {
		return fmt.Errorf("inference endpoint not configured")
	}
	return nil
}
