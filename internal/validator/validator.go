// Package validator checks that a translation is written in the requested
// target language.
package validator

import (
	"fmt"
	"strings"
)

// minValidationLength is the rune count below which detection is too
// unreliable to act on.
const minValidationLength = 20

// LanguageDetector is satisfied by *detector.Detector.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

type Validator struct {
	det LanguageDetector
}

func New(det LanguageDetector) *Validator {
	return &Validator{det: det}
}

// Check returns a warning when translatedText does not look like targetLang,
// and "" otherwise. Short texts, texts of undetectable language and an empty
// or "auto" target are never flagged.
func (v *Validator) Check(translatedText, targetLang string) string {
	ok, err := v.IsValid(translatedText, targetLang)
	if ok {
		return ""
	}
	return fmt.Sprintf("translation may not be in the requested language: %v", err)
}

// IsValid reports whether translatedText appears to be written in targetLang.
// The error explains a false result.
func (v *Validator) IsValid(translatedText, targetLang string) (bool, error) {
	if targetLang == "" || targetLang == "auto" {
		return true, nil
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return true, nil
	}

	if !strings.EqualFold(detected, primarySubtag(targetLang)) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return true, nil
}

// primarySubtag reduces "pt-BR" or "zh_CN" to the ISO 639-1 part.
func primarySubtag(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
