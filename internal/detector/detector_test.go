package detector

import (
	"testing"

	lingua "github.com/pemistahl/lingua-go"
)

var shared = New()

func TestDetector_DetectISO(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
		wantOK   bool
	}{
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			text:   "  \n\t ",
			wantOK: false,
		},
		{
			name:     "spanish clinical note",
			text:     "Padres no consanguíneos, niegan endogamia. Madre con deseo gestacional ulterior, niega abortos.",
			wantCode: "es",
			wantOK:   true,
		},
		{
			name:     "catalan clinical note",
			text:     "Antecedents familiars: el germà té antecedents de laringotraqueomalàcia lleu i bronquitis de repetició.",
			wantCode: "ca",
			wantOK:   true,
		},
		{
			name:     "english clinical note",
			text:     "The patient's brother has a history of mild laryngotracheomalacia and recurrent bronchospasm.",
			wantCode: "en",
			wantOK:   true,
		},
		{
			name:     "french clinical note",
			text:     "Le patient présente des antécédents familiaux de bronchospasmes à répétition.",
			wantCode: "fr",
			wantOK:   true,
		},
		{
			name:     "german clinical note",
			text:     "Die Mutter hat keine Fehlgeburten und der Vater hat drei Brüder mit Kehlkopferkrankungen.",
			wantCode: "de",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := shared.DetectISO(tt.text)
			if ok != tt.wantOK {
				t.Errorf("DetectISO(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && code != tt.wantCode {
				t.Errorf("DetectISO(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}

func TestDetector_Detect(t *testing.T) {
	lang, ok := shared.Detect("Hola, esto es una prueba del traductor médico en español.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if lang != lingua.Spanish {
		t.Errorf("expected Spanish, got %v", lang)
	}
}

func TestDetector_CustomLanguages(t *testing.T) {
	d := New(lingua.English, lingua.German)

	code, ok := d.DetectISO("Dies ist ein ausführlicher deutscher Arztbrief über den Patienten.")
	if !ok || code != "de" {
		t.Errorf("expected de, got %q (ok=%v)", code, ok)
	}
}

func TestDetector_ShortText(t *testing.T) {
	// Short text may or may not be detected; it must not panic.
	_, _ = shared.DetectISO("Hi")
}
