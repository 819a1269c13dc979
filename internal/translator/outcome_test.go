package translator

import (
	"context"
	"strings"
	"testing"
	"time"
)

type fakeService struct {
	name  string
	out   Outcome
	calls int
	last  TranslateRequest
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) Outcome {
	f.calls++
	f.last = req
	return f.out
}

func (f *fakeService) IsAvailable(ctx context.Context) error { return nil }

func TestOutcome_Result(t *testing.T) {
	tests := []struct {
		name        string
		out         Outcome
		wantOK      bool
		wantMessage string
	}{
		{"success", Success("Mother alpha trait."), true, "Mother alpha trait."},
		{"success empty", Success(""), true, ""},
		{"pending", Pending("12"), false, "model is loading, estimated time: 12 seconds; try again later"},
		{"pending unknown", Pending(""), false, "model is loading, estimated time: unknown; try again later"},
		{"failure", Failure(401, "bad token"), false, "API error 401: bad token"},
		{"no translation", Failure(200, NoValidTranslation), false, "API error 200: no valid translation received."},
		{"transport", TransportError("connection refused"), false, "request failed: connection refused"},
		{"validation", Validation("text is empty"), false, "please enter some text to translate"},
		{"out of range kind", Outcome{Kind: Kind(42)}, false, "unexpected translation outcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.out.Result()
			if ok != tt.wantOK {
				t.Errorf("Result() ok = %v, want %v", ok, tt.wantOK)
			}
			if msg != tt.wantMessage {
				t.Errorf("Result() message = %q, want %q", msg, tt.wantMessage)
			}
			if tt.out.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v", tt.out.OK(), tt.wantOK)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindSuccess:        "success",
		KindPending:        "pending",
		KindFailure:        "failure",
		KindTransportError: "transport_error",
		KindValidation:     "validation",
		Kind(-1):           "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestPending_DefaultsToUnknown(t *testing.T) {
	if got := Pending("  ").EstimatedTime; got != UnknownEstimate {
		t.Errorf("expected %q, got %q", UnknownEstimate, got)
	}
}

func TestTranslate_BlankInputNeverReachesService(t *testing.T) {
	svc := &fakeService{name: "fake", out: Success("should not be used")}

	out := Translate(context.Background(), svc, ServiceConfig{}, TranslateRequest{Text: " \n ", SourceLang: "es", TargetLang: "en"})

	if out.Kind != KindValidation {
		t.Errorf("expected validation outcome, got %s", out.Kind)
	}
	if out.Service != "fake" {
		t.Errorf("expected service name on outcome, got %q", out.Service)
	}
	if svc.calls != 0 {
		t.Errorf("expected no service calls, got %d", svc.calls)
	}
}

func TestTranslate_FillsServiceAndLatency(t *testing.T) {
	svc := &fakeService{name: "fake", out: Success("ok")}

	out := Translate(context.Background(), svc, ServiceConfig{}, TranslateRequest{Text: "hola", SourceLang: "es", TargetLang: "en"})

	if !out.OK() {
		t.Fatalf("expected success, got %s", out.Kind)
	}
	if out.Service != "fake" {
		t.Errorf("expected 'fake', got %q", out.Service)
	}
	if out.Latency <= 0 {
		t.Error("expected latency to be set")
	}
	if svc.calls != 1 {
		t.Errorf("expected one call, got %d", svc.calls)
	}
	if svc.last.Text != "hola" {
		t.Errorf("expected text to be passed unchanged, got %q", svc.last.Text)
	}
}

func TestTranslate_KeepsServiceLatency(t *testing.T) {
	svc := &fakeService{name: "fake", out: Outcome{Kind: KindSuccess, Service: "remote", Latency: 3 * time.Second}}

	out := Translate(context.Background(), svc, ServiceConfig{}, TranslateRequest{Text: "hola", TargetLang: "en"})

	if out.Service != "remote" || out.Latency != 3*time.Second {
		t.Errorf("expected service-reported values, got %q %v", out.Service, out.Latency)
	}
}

func TestTranslate_MultilineTextPassedVerbatim(t *testing.T) {
	text := "Antecedentes familiares:\n - Madre alfa trait.\n - Padre: Beta minor trait."
	svc := &fakeService{name: "fake", out: Success("x")}

	Translate(context.Background(), svc, ServiceConfig{}, TranslateRequest{Text: text, SourceLang: "es", TargetLang: "en"})

	if svc.last.Text != text || !strings.Contains(svc.last.Text, "\n") {
		t.Errorf("expected multi-line text to be passed verbatim, got %q", svc.last.Text)
	}
}
