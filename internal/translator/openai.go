package translator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/valpere/medtran/internal/postprocess"
)

const (
	DefaultOpenAIModel   = openai.GPT3Dot5Turbo
	DefaultOpenAITimeout = 120 * time.Second
)

// OpenAIService translates through a chat completion model.
type OpenAIService struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenAIService(baseURL, model string, timeout time.Duration) *OpenAIService {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = DefaultOpenAITimeout
	}
	return &OpenAIService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome {
	start := time.Now()
	model := s.model
	if cfg.Model != "" {
		model = cfg.Model
	}

	out := s.translate(ctx, cfg, req, model)
	out.Service = s.Name()
	out.Model = model
	out.Latency = time.Since(start)
	return out
}

func (s *OpenAIService) translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest, model string) Outcome {
	if out, ok := ValidateRequest(req); !ok {
		return out
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	config := openai.DefaultConfig(cfg.Credential)
	config.HTTPClient = s.client
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	} else if s.baseURL != "" {
		config.BaseURL = s.baseURL
	}
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildClinicalPrompt(req.SourceLang, req.TargetLang)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
	})
	if err != nil {
		return openAIErrorOutcome(err)
	}

	if len(resp.Choices) == 0 {
		return Failure(http.StatusOK, NoValidTranslation)
	}
	return Success(postprocess.Clean(resp.Choices[0].Message.Content))
}

func openAIErrorOutcome(err error) Outcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusOutcome(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusOutcome(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return TransportError(err.Error())
}

// statusOutcome maps an HTTP error reported by an SDK.
func statusOutcome(status int, detail string) Outcome {
	switch status {
	case 0:
		return TransportError(detail)
	case http.StatusServiceUnavailable:
		return Pending(UnknownEstimate)
	default:
		return Failure(status, detail)
	}
}

func (s *OpenAIService) IsAvailable(ctx context.Context) error {
	return nil
}

// languageName turns "es" into "Spanish"; unknown codes are used as given.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

func buildClinicalPrompt(sourceLang, targetLang string) string {
	var sb strings.Builder

	source := "the detected language"
	if sourceLang != "" && sourceLang != "auto" {
		source = languageName(sourceLang)
	}

	sb.WriteString(fmt.Sprintf("You are a professional medical translator. Translate the clinical text from %s to %s.\n", source, languageName(targetLang)))
	sb.WriteString("Keep medical terminology, drug names, doses, units and abbreviations exact. ")
	sb.WriteString("Preserve line breaks and list structure. ")
	sb.WriteString("Only respond with the translation, nothing else.")

	return sb.String()
}
