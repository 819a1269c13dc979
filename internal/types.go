package internal

import "time"

// TranslationRequest identifies one user-initiated translation.
type TranslationRequest struct {
	ID         string    `json:"id"`
	SourceText string    `json:"-"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Timestamp  time.Time `json:"timestamp"`
}
