package ingest

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/model"
)

// Decoder recovers answer-option lists from the answer cell of a parsed row.
//
// The cell is a JSON array nested inside a tabular cell, possibly re-escaped
// by one or more upstream tools, so the exact quoting level cannot be known
// in advance. Decoding runs an ordered chain of recovery strategies and takes
// the first one that yields parseable JSON. Malformed content never produces
// an error: the row is simply discarded by returning an empty list.
type Decoder struct {
	log zerolog.Logger
}

// NewDecoder creates a Decoder.
func NewDecoder(log zerolog.Logger) *Decoder {
	return &Decoder{log: log.With().Str("component", "decoder").Logger()}
}

// recovery is one named strategy for cleaning a raw answer cell before a
// JSON decode attempt.
type recovery struct {
	name  string
	clean func(string) string
}

var recoveries = []recovery{
	// Undo CSV-level quote escaping and one layer of wrapping quotes.
	{name: "unescape", clean: func(s string) string {
		if strings.Contains(s, `\"`) {
			s = strings.ReplaceAll(s, `\"`, `"`)
		}
		return stripQuoteLayer(s)
	}},
	// More aggressive: strip a wrapping quote layer first, then unescape
	// quotes and doubled backslashes.
	{name: "aggressive", clean: func(s string) string {
		s = stripQuoteLayer(s)
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
		return s
	}},
}

// Decode turns a raw answer cell into a validated option list. An empty
// result means the row should be dropped; Decode never fails.
func (d *Decoder) Decode(raw string) []model.AnswerOption {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, r := range recoveries {
		options, ok := d.tryDecode(r.clean(s))
		if ok {
			return options
		}
	}

	d.log.Warn().Str("value", truncate(s, 100)).Msg("Answer cell is not decodable JSON")
	return nil
}

// tryDecode attempts one structured decode of the cleaned text. The second
// return reports whether the text parsed as JSON at all; shape problems after
// a successful parse are final (logged, empty result) rather than retried,
// since further unescaping cannot turn a non-array into an array.
func (d *Decoder) tryDecode(s string) ([]model.AnswerOption, bool) {
	var value interface{}
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return nil, false
	}

	items, ok := value.([]interface{})
	if !ok {
		d.log.Warn().Str("value", truncate(s, 50)).Msg("Expected a JSON array, dropping row")
		return nil, true
	}

	var options []model.AnswerOption
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			d.log.Warn().Msg("Answer option is not an object, dropping option")
			continue
		}
		text, hasText := obj["text"].(string)
		isCorrect, hasCorrect := obj["is_correct"].(bool)
		if !hasText || !hasCorrect {
			d.log.Warn().Msg("Answer option missing 'text' or 'is_correct', dropping option")
			continue
		}
		options = append(options, model.AnswerOption{Text: text, IsCorrect: isCorrect})
	}
	return options, true
}

// stripQuoteLayer removes exactly one pair of wrapping double quotes, if
// present.
func stripQuoteLayer(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
