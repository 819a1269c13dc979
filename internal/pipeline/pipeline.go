// Package pipeline runs one user translation: source language resolution,
// the single remote attempt, an optional language check and the history
// record.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/medtran/internal"
	"github.com/valpere/medtran/internal/store"
	"github.com/valpere/medtran/internal/translator"
)

// AutoSource asks for the source language to be detected.
const AutoSource = "auto"

type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

// LanguageChecker returns a warning when text is not in targetLang.
type LanguageChecker interface {
	Check(text, targetLang string) string
}

// AttemptRecorder persists attempt metadata; *store.Store implements it.
type AttemptRecorder interface {
	SaveAttempt(ctx context.Context, a store.Attempt) error
}

// Pipeline is safe for concurrent use as long as its collaborators are.
// Detector, Checker and History are optional.
type Pipeline struct {
	Service  translator.TranslationService
	Config   translator.ServiceConfig
	Detector LanguageDetector
	Checker  LanguageChecker
	History  AttemptRecorder
	Logger   *slog.Logger
}

type Result struct {
	RequestID  string             `json:"request_id"`
	SourceLang string             `json:"source_lang"`
	TargetLang string             `json:"target_lang"`
	Outcome    translator.Outcome `json:"outcome"`
	Warning    string             `json:"warning,omitempty"`
}

// Result projects onto the (success, message-or-text) pair.
func (r Result) Result() (bool, string) {
	return r.Outcome.Result()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Run performs one translation. It never fails: every problem is reported
// through the returned Outcome.
func (p *Pipeline) Run(ctx context.Context, text, sourceLang, targetLang string) Result {
	req := internal.TranslationRequest{
		ID:         uuid.New().String(),
		SourceText: text,
		SourceLang: p.resolveSource(text, sourceLang),
		TargetLang: strings.TrimSpace(targetLang),
		Timestamp:  time.Now(),
	}
	log := p.logger().With("request_id", req.ID, "service", p.Service.Name(),
		"source", req.SourceLang, "target", req.TargetLang)

	out := translator.Translate(ctx, p.Service, p.Config, translator.TranslateRequest{
		Text:       req.SourceText,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})

	res := Result{
		RequestID:  req.ID,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Outcome:    out,
	}

	if out.OK() && p.Checker != nil {
		res.Warning = p.Checker.Check(out.TranslatedText, req.TargetLang)
		if res.Warning != "" {
			log.Warn("language check failed", "warning", res.Warning)
		}
	}

	attrs := []any{"kind", out.Kind.String(), "model", out.Model, "latency", out.Latency}
	switch out.Kind {
	case translator.KindSuccess:
		log.Info("translation completed", attrs...)
	case translator.KindPending:
		log.Info("model loading", append(attrs, "estimated_time", out.EstimatedTime)...)
	case translator.KindValidation:
		log.Debug("blank input rejected", attrs...)
	default:
		log.Warn("translation failed", append(attrs, "status", out.StatusCode)...)
	}

	p.record(ctx, log, req, out)
	return res
}

func (p *Pipeline) resolveSource(text, sourceLang string) string {
	sourceLang = strings.TrimSpace(sourceLang)
	if sourceLang == "" {
		sourceLang = AutoSource
	}
	if sourceLang != AutoSource || p.Detector == nil {
		return sourceLang
	}
	if detected, ok := p.Detector.DetectISO(text); ok {
		p.logger().Debug("detected source language", "source", detected)
		return detected
	}
	return sourceLang
}

func (p *Pipeline) record(ctx context.Context, log *slog.Logger, req internal.TranslationRequest, out translator.Outcome) {
	if p.History == nil || out.Kind == translator.KindValidation {
		return
	}
	detail := out.Detail
	if out.Kind == translator.KindPending {
		detail = "estimated_time=" + out.EstimatedTime
	}
	a := store.NewAttempt(req, store.Result{
		Service:    out.Service,
		Model:      out.Model,
		Kind:       out.Kind.String(),
		StatusCode: out.StatusCode,
		Detail:     detail,
		Latency:    out.Latency,
	})
	if err := p.History.SaveAttempt(context.WithoutCancel(ctx), a); err != nil {
		log.Error("failed to record attempt", "error", err)
	}
}
