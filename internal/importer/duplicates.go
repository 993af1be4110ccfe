package importer

import (
	"strings"

	"github.com/avoronov/flashdeck/internal/model"
)

// FilterDuplicates splits a parsed batch into cards safe to import and the
// terms that collide, case-insensitively, with either the live collection
// or an earlier entry in the same batch. The parser itself is
// duplicate-agnostic; callers compose this before dispatching a bulk import.
func FilterDuplicates(batch, existing []model.Card) (unique []model.Card, duplicates []string) {
	seen := make(map[string]bool, len(existing)+len(batch))
	for _, c := range existing {
		seen[strings.ToLower(c.Term)] = true
	}
	for _, c := range batch {
		key := strings.ToLower(c.Term)
		if seen[key] {
			duplicates = append(duplicates, c.Term)
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique, duplicates
}
