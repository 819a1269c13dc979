package translator

import (
	"context"
	"time"
)

// ServiceConfig carries per-call settings. Credential is an opaque bearer
// token; it must never be logged or copied into an Outcome.
type ServiceConfig struct {
	Credential string        `mapstructure:"credential" json:"-"`
	BaseURL    string        `mapstructure:"base_url" json:"base_url"`
	Model      string        `mapstructure:"model" json:"model"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Kind tags the variant held by an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindPending
	KindFailure
	KindTransportError
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindPending:
		return "pending"
	case KindFailure:
		return "failure"
	case KindTransportError:
		return "transport_error"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Outcome is the result of one translation attempt. Only the fields of the
// variant named by Kind are meaningful.
type Outcome struct {
	Kind Kind `json:"kind"`

	// KindSuccess
	TranslatedText string `json:"translated_text,omitempty"`

	// KindPending: estimated load time as sent by the service, or "unknown".
	EstimatedTime string `json:"estimated_time,omitempty"`

	// KindFailure
	StatusCode int `json:"status_code,omitempty"`

	// KindFailure, KindTransportError, KindValidation
	Detail string `json:"detail,omitempty"`

	Service string        `json:"service"`
	Model   string        `json:"model,omitempty"`
	Latency time.Duration `json:"latency"`
}

// TranslationService is a remote translation backend. Translate issues at
// most one request and reports every result, faults included, as an Outcome.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome
	IsAvailable(ctx context.Context) error
}
