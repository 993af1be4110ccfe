// Package model defines domain entities shared by the deck store, the
// import parser, and the storage adapters.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// SchemaVersion is written into every persisted envelope.
const SchemaVersion = "1.0"

// Card is a single term/definition study unit.
type Card struct {
	ID         uuid.UUID `json:"id"`         // assigned at creation, never changes
	Term       string    `json:"term"`       // non-empty after trimming
	Definition string    `json:"definition"` // non-empty after trimming
	Mastered   bool      `json:"mastered"`
	CreatedAt  time.Time `json:"createdAt"` // assigned at creation, never changes

	// Optional linguistic metadata. nil means absent; an empty string or
	// empty slice is never persisted as a value.
	PartOfSpeech     *string  `json:"partOfSpeech,omitempty"`
	ExampleSentences []string `json:"exampleSentences,omitempty"`
}

// Filter selects which cards are visible during study.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterNeedsReview Filter = "needsReview"
)

// State is the collection root owned by the deck store.
type State struct {
	Cards []Card // order significant, preserved across sessions unless shuffled

	Filter Filter
	// CurrentIndex is the study cursor into the filtered view.
	// Invariant: 0 <= CurrentIndex < max(1, visible count).
	CurrentIndex int
}

// NewState returns the empty session state.
func NewState() State {
	return State{Filter: FilterAll}
}

// Envelope is the versioned wrapper written to durable storage.
type Envelope struct {
	Version      string    `json:"version"`
	Cards        []Card    `json:"cards"`
	LastModified time.Time `json:"lastModified"`
}

// Stats aggregates mastery progress over a collection.
type Stats struct {
	Total              int `json:"total"`
	Mastered           int `json:"mastered"`
	NeedsReview        int `json:"needsReview"`
	MasteredPercentage int `json:"masteredPercentage"`
}
