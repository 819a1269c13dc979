// Package detector resolves the source language of clinical text.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// DefaultLanguages covers the languages seen in the hospital's clinical
// reports and the usual target languages for patients.
var DefaultLanguages = []lingua.Language{
	lingua.Spanish,
	lingua.Catalan,
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Arabic,
	lingua.Russian,
	lingua.Ukrainian,
	lingua.Chinese,
	lingua.Romanian,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to langs, or to DefaultLanguages when
// none are given. Building is expensive; share the instance.
func New(langs ...lingua.Language) *Detector {
	if len(langs) < 2 {
		langs = DefaultLanguages
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithMinimumRelativeDistance(0.1).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if strings.TrimSpace(text) == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lowercase ISO 639-1 code, the form used in model ids.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
