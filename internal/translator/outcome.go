package translator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// NoValidTranslation is the detail of a 200 response without a usable
	// translation in it.
	NoValidTranslation = "no valid translation received."

	// UnknownEstimate stands in for a missing estimated load time.
	UnknownEstimate = "unknown"

	blankInputDetail = "text is empty"
)

func Success(text string) Outcome {
	return Outcome{Kind: KindSuccess, TranslatedText: text}
}

func Pending(estimated string) Outcome {
	if strings.TrimSpace(estimated) == "" {
		estimated = UnknownEstimate
	}
	return Outcome{Kind: KindPending, EstimatedTime: estimated}
}

func Failure(status int, detail string) Outcome {
	return Outcome{Kind: KindFailure, StatusCode: status, Detail: detail}
}

func TransportError(detail string) Outcome {
	return Outcome{Kind: KindTransportError, Detail: detail}
}

func Validation(detail string) Outcome {
	return Outcome{Kind: KindValidation, Detail: detail}
}

// OK reports whether the outcome carries a translation.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess
}

// Result projects the outcome onto the (success, message-or-text) pair shown
// to end users.
func (o Outcome) Result() (bool, string) {
	switch o.Kind {
	case KindSuccess:
		return true, o.TranslatedText
	case KindPending:
		if o.EstimatedTime == UnknownEstimate {
			return false, "model is loading, estimated time: unknown; try again later"
		}
		return false, fmt.Sprintf("model is loading, estimated time: %s seconds; try again later", o.EstimatedTime)
	case KindFailure:
		return false, fmt.Sprintf("API error %d: %s", o.StatusCode, o.Detail)
	case KindTransportError:
		return false, fmt.Sprintf("request failed: %s", o.Detail)
	case KindValidation:
		return false, "please enter some text to translate"
	default:
		return false, "unexpected translation outcome"
	}
}

// Message is the second half of Result.
func (o Outcome) Message() string {
	_, msg := o.Result()
	return msg
}

// ValidateRequest rejects input that must not reach the network.
func ValidateRequest(req TranslateRequest) (Outcome, bool) {
	if strings.TrimSpace(req.Text) == "" {
		return Validation(blankInputDetail), false
	}
	return Outcome{}, true
}

// Translate validates req and hands it to svc. Blank text never reaches the
// service. The returned outcome always names the service and its latency.
func Translate(ctx context.Context, svc TranslationService, cfg ServiceConfig, req TranslateRequest) Outcome {
	if out, ok := ValidateRequest(req); !ok {
		out.Service = svc.Name()
		return out
	}

	start := time.Now()
	out := svc.Translate(ctx, cfg, req)
	if out.Service == "" {
		out.Service = svc.Name()
	}
	if out.Latency == 0 {
		out.Latency = time.Since(start)
	}
	return out
}
