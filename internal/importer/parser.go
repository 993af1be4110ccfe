// Package importer converts freeform pasted text into card records with a
// per-entry error report, plus duplicate detection against a live
// collection. Both are pure; neither touches state or storage.
package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avoronov/flashdeck/internal/deck"
	"github.com/avoronov/flashdeck/internal/model"
)

// Field limits enforced per imported entry.
const (
	MaxTermLen       = 100
	MaxDefinitionLen = 500
	MaxPartOfSpeech  = 50
	MaxExamples      = 5
	MaxExampleLen    = 500
)

// FailedEntry reports one rejected entry with its original text.
type FailedEntry struct {
	RawText string `json:"rawText"`
	Err     string `json:"error"`
}

// Result collects parse outcomes. One malformed entry never aborts the
// batch; successes and failures are reported side by side.
type Result struct {
	Successful []model.Card  `json:"successful"`
	Failed     []FailedEntry `json:"failed"`
}

// Parse converts pasted text into cards.
//
// Entry splitting: with line breaks present, each line is one entry and
// semicolons stay literal (multilingual glosses often contain them). A
// single line without breaks is split on semicolons instead, for compact
// one-line pasting.
//
// Each entry is "term, definition[, partOfSpeech[, ex1 | ex2 | ...]]".
// A comma always terminates the current field, so a definition cannot
// contain a bare comma; everything after the third comma belongs to the
// examples field verbatim, so examples may.
func Parse(raw string) Result {
	var res Result
	// Trim before detecting line breaks: a compact one-line paste read from
	// a file usually ends in a newline and must still split on semicolons.
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return res
	}

	var entries []string
	if strings.ContainsAny(raw, "\r\n") {
		entries = strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' })
	} else {
		entries = strings.Split(raw, ";")
	}

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		card, err := parseEntry(entry)
		if err != nil {
			res.Failed = append(res.Failed, FailedEntry{RawText: entry, Err: err.Error()})
			continue
		}
		res.Successful = append(res.Successful, card)
	}
	return res
}

func parseEntry(entry string) (model.Card, error) {
	fields := strings.SplitN(entry, ",", 4)
	if len(fields) < 2 {
		return model.Card{}, fmt.Errorf("missing separator: expected \"term, definition\"")
	}

	term := strings.TrimSpace(fields[0])
	definition := strings.TrimSpace(fields[1])
	switch {
	case term == "":
		return model.Card{}, fmt.Errorf("term is empty")
	case definition == "":
		return model.Card{}, fmt.Errorf("definition is empty")
	case utf8.RuneCountInString(term) > MaxTermLen:
		return model.Card{}, fmt.Errorf("term too long: %d chars (limit %d)", utf8.RuneCountInString(term), MaxTermLen)
	case utf8.RuneCountInString(definition) > MaxDefinitionLen:
		return model.Card{}, fmt.Errorf("definition too long: %d chars (limit %d)", utf8.RuneCountInString(definition), MaxDefinitionLen)
	}

	var pos *string
	if len(fields) >= 3 {
		if p := strings.TrimSpace(fields[2]); p != "" {
			if utf8.RuneCountInString(p) > MaxPartOfSpeech {
				return model.Card{}, fmt.Errorf("part of speech too long: %d chars (limit %d)", utf8.RuneCountInString(p), MaxPartOfSpeech)
			}
			pos = &p
		}
	}

	var examples []string
	if len(fields) == 4 {
		for _, ex := range strings.Split(fields[3], "|") {
			ex = strings.TrimSpace(ex)
			if ex == "" {
				continue
			}
			if utf8.RuneCountInString(ex) > MaxExampleLen {
				return model.Card{}, fmt.Errorf("example sentence too long: %d chars (limit %d)", utf8.RuneCountInString(ex), MaxExampleLen)
			}
			examples = append(examples, ex)
		}
		if len(examples) > MaxExamples {
			return model.Card{}, fmt.Errorf("too many example sentences: %d (limit %d)", len(examples), MaxExamples)
		}
	}

	return deck.NewCard(term, definition, false, pos, examples), nil
}
