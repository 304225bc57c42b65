package chat

import (
	"encoding/json"
	"errors"
	"strings"
)

// CivicAnswer is the canonical bilingual answer produced from the civic
// workflow's response, whatever shape it arrived in.
type CivicAnswer struct {
	EnglishText string `json:"englishText"`
	SwahiliText string `json:"swahiliText"`
}

// ErrCivicShape is returned when the workflow response matches none of the
// known shapes. Unrecognized payloads are a decode error, not a string to
// show the user.
var ErrCivicShape = errors.New("unrecognized civic workflow response shape")

type civicEnvelope struct {
	Success bool `json:"success"`
	Data    *struct {
		Answer *struct {
			English string `json:"english"`
			Swahili string `json:"swahili"`
		} `json:"answer"`
		Markdown *struct {
			Formatted string `json:"formatted"`
		} `json:"markdown"`
	} `json:"data"`

	Content  string `json:"content"`
	Answer   string `json:"answer"`
	Response string `json:"response"`
	Output   string `json:"output"`
}

// NormalizeCivic parses a civic workflow response. Known shapes, tried in
// order:
//
//  1. {success, data:{answer:{english,swahili}, markdown:{formatted}}} —
//     the markdown's "## English"/"## Swahili" sections override the answer
//     fields when both headings are present.
//  2. a bare JSON string.
//  3. {content} | {answer} | {response} | {output} with a string value.
//
// Shapes 2 and 3 carry no language marker, so both fields get the text.
func NormalizeCivic(raw json.RawMessage) (CivicAnswer, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if strings.TrimSpace(asString) == "" {
			return CivicAnswer{}, ErrCivicShape
		}
		return CivicAnswer{EnglishText: asString, SwahiliText: asString}, nil
	}

	var envelope civicEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return CivicAnswer{}, ErrCivicShape
	}

	if envelope.Success && envelope.Data != nil && envelope.Data.Answer != nil {
		answer := CivicAnswer{
			EnglishText: envelope.Data.Answer.English,
			SwahiliText: envelope.Data.Answer.Swahili,
		}
		if envelope.Data.Markdown != nil {
			applyFormatted(&answer, envelope.Data.Markdown.Formatted)
		}
		if answer.EnglishText == "" && answer.SwahiliText == "" {
			return CivicAnswer{}, ErrCivicShape
		}
		return answer, nil
	}

	for _, text := range []string{envelope.Content, envelope.Answer, envelope.Response, envelope.Output} {
		if strings.TrimSpace(text) != "" {
			return CivicAnswer{EnglishText: text, SwahiliText: text}, nil
		}
	}

	return CivicAnswer{}, ErrCivicShape
}

// applyFormatted folds a "## English" / "## Swahili" markdown document into
// the answer. Formatted text without both headings replaces both fields.
func applyFormatted(answer *CivicAnswer, formatted string) {
	formatted = strings.TrimSpace(formatted)
	if formatted == "" {
		return
	}

	if strings.Contains(formatted, "## English") && strings.Contains(formatted, "## Swahili") {
		for _, section := range strings.Split(formatted, "## ") {
			switch {
			case strings.HasPrefix(section, "English"):
				answer.EnglishText = strings.TrimSpace(strings.TrimPrefix(section, "English"))
			case strings.HasPrefix(section, "Swahili"):
				answer.SwahiliText = strings.TrimSpace(strings.TrimPrefix(section, "Swahili"))
			}
		}
		return
	}

	answer.EnglishText = formatted
	answer.SwahiliText = formatted
}
