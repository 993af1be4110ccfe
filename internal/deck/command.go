// Package deck implements the card collection state machine: a pure
// reducer over a tagged command set, derived-view selectors, and a Store
// that owns the live state and persists it after every mutation.
package deck

import (
	"github.com/gofrs/uuid/v5"

	"github.com/avoronov/flashdeck/internal/model"
)

// Command is a tagged mutation record accepted by Apply. The set is sealed:
// only the types in this file implement it.
type Command interface{ isCommand() }

// Add appends a new card to the end of the collection. Length limits are
// the caller's responsibility; the reducer trusts its input.
type Add struct {
	Term             string
	Definition       string
	Mastered         bool
	PartOfSpeech     *string
	ExampleSentences []string
}

// Update merges the provided fields into the card with the given ID.
// Nil fields are left untouched; ID, CreatedAt and Mastered cannot be
// changed through Update. Unknown ID is a no-op.
type Update struct {
	ID               uuid.UUID
	Term             *string
	Definition       *string
	PartOfSpeech     *string
	ExampleSentences *[]string
}

// Delete removes the card with the given ID. Unknown ID is a no-op.
type Delete struct {
	ID uuid.UUID
}

// ToggleMastered flips the mastered flag. Unknown ID is a no-op.
type ToggleMastered struct {
	ID uuid.UUID
}

// SetFilter sets the visibility filter and resets the cursor to 0,
// even when the filter is unchanged.
type SetFilter struct {
	Filter model.Filter
}

// Navigate moves the cursor within the current filtered view. Out-of-range
// targets are clamped, never rejected.
type Navigate struct {
	Index int
}

// Shuffle applies a uniform random permutation to the collection and
// resets the cursor. The new order persists like any other mutation.
type Shuffle struct{}

// BulkImport appends already-built cards in input order. Duplicate
// filtering happens before dispatch (see the importer package).
type BulkImport struct {
	Cards []model.Card
}

// Load replaces the collection wholesale. Used only at hydration.
type Load struct {
	Cards []model.Card
}

func (Add) isCommand()            {}
func (Update) isCommand()         {}
func (Delete) isCommand()         {}
func (ToggleMastered) isCommand() {}
func (SetFilter) isCommand()      {}
func (Navigate) isCommand()       {}
func (Shuffle) isCommand()        {}
func (BulkImport) isCommand()     {}
func (Load) isCommand()           {}
