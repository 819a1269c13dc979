// Package postprocess strips chat-model artefacts from translated text.
//
// Dedicated translation models return the translation only. Chat models
// often add reasoning blocks, a short preamble or a code fence around the
// answer; Clean removes those before the text is shown to a clinician.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean applies every cleanup step in order and trims the result.
func Clean(text string) string {
	text = stripReasoning(text)
	text = stripFence(text)
	text = stripPreamble(text)
	text = stripQuotes(text)
	return strings.TrimSpace(text)
}

// reasoningRe lists each tag pair separately: RE2 has no backreferences.
var reasoningRe = regexp.MustCompile(
	`(?is)<think>.*?</think>|<thinking>.*?</thinking>|<reasoning>.*?</reasoning>`,
)

// openReasoningRe catches a block that was cut off before its closing tag.
var openReasoningRe = regexp.MustCompile(`(?is)(?:<think>|<thinking>|<reasoning>).*$`)

func stripReasoning(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	text = openReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n(.*?)\n?```$")

func stripFence(text string) string {
	if m := fenceRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// preambleRes are anchored at the start and require a trailing colon so
// that clinical sentences starting with "Translation" are left alone.
var preambleRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:(?:certainly|sure|of course)[,.!]?\s+)?here(?:'s| is)(?: the| your)? (?:translated text|translation)(?: into [a-z]+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translated text|translation)(?: into [a-z]+)?\s*:`),
	regexp.MustCompile(`(?i)^(?:aquí (?:está|tienes) )?(?:la )?traducción(?: al [a-záéíóú]+)?\s*:`),
}

func stripPreamble(text string) string {
	for _, re := range preambleRes {
		if loc := re.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

func closingQuote(r rune) (rune, bool) {
	switch r {
	case '"', '\'':
		return r, true
	case '«':
		return '»', true
	case '\u201C':
		return '\u201D', true
	}
	return 0, false
}

func stripQuotes(text string) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}
	if closing, ok := closingQuote(runes[0]); ok && runes[len(runes)-1] == closing {
		inner := runes[1 : len(runes)-1]
		// "a" and "b" is two quotations, not one wrapped answer.
		if strings.ContainsRune(string(inner), runes[0]) {
			return text
		}
		return strings.TrimSpace(string(inner))
	}
	return text
}
