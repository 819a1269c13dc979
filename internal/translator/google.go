package translator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const DefaultGoogleTimeout = 60 * time.Second

// GoogleService uses Cloud Translation v2 with the credential as API key.
type GoogleService struct {
	opts []option.ClientOption
}

func NewGoogleService(opts ...option.ClientOption) *GoogleService {
	return &GoogleService{opts: opts}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome {
	start := time.Now()
	out := s.translate(ctx, cfg, req)
	out.Service = s.Name()
	out.Model = "nmt"
	out.Latency = time.Since(start)
	return out
}

func (s *GoogleService) translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome {
	if out, ok := ValidateRequest(req); !ok {
		return out
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultGoogleTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	targetLangTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return Failure(http.StatusBadRequest, fmt.Sprintf("invalid target language: %v", err))
	}

	opts := append([]option.ClientOption{}, s.opts...)
	if cfg.Credential != "" {
		opts = append(opts, option.WithAPIKey(cfg.Credential))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return TransportError(fmt.Sprintf("failed to create client: %v", err))
	}
	defer client.Close()

	var translateOpts *translate.Options
	if req.SourceLang != "" && req.SourceLang != "auto" {
		sourceLangTag, err := language.Parse(req.SourceLang)
		if err != nil {
			return Failure(http.StatusBadRequest, fmt.Sprintf("invalid source language: %v", err))
		}
		translateOpts = &translate.Options{Source: sourceLangTag, Format: translate.Text}
	} else {
		translateOpts = &translate.Options{Format: translate.Text}
	}

	translations, err := client.Translate(ctx, []string{req.Text}, targetLangTag, translateOpts)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return statusOutcome(apiErr.Code, apiErr.Body)
		}
		return TransportError(err.Error())
	}

	if len(translations) == 0 {
		return Failure(http.StatusOK, NoValidTranslation)
	}
	return Success(translations[0].Text)
}

func (s *GoogleService) IsAvailable(ctx context.Context) error {
	return nil
}
