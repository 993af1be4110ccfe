package deck

import (
	"math/rand"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avoronov/flashdeck/internal/model"
)

// Apply is the pure transition function: it returns the state after cmd
// without mutating its input. It never fails; commands referencing an
// unknown card ID leave the state unchanged (a stale UI re-render may race
// a delete, so dangling references are deliberately not errors).
func Apply(s model.State, cmd Command) model.State {
	switch c := cmd.(type) {
	case Add:
		return applyAdd(s, c)
	case Update:
		return applyUpdate(s, c)
	case Delete:
		return applyDelete(s, c)
	case ToggleMastered:
		return applyToggleMastered(s, c)
	case SetFilter:
		s = cloneState(s)
		s.Filter = c.Filter
		s.CurrentIndex = 0
		return s
	case Navigate:
		s = cloneState(s)
		s.CurrentIndex = clampIndex(c.Index, len(VisibleCards(s)))
		return s
	case Shuffle:
		return applyShuffle(s)
	case BulkImport:
		s = cloneState(s)
		s.Cards = append(s.Cards, c.Cards...)
		return s
	case Load:
		return model.State{
			Cards:  append([]model.Card(nil), c.Cards...),
			Filter: model.FilterAll,
		}
	}
	return s
}

func applyAdd(s model.State, c Add) model.State {
	s = cloneState(s)
	s.Cards = append(s.Cards, NewCard(c.Term, c.Definition, c.Mastered, c.PartOfSpeech, c.ExampleSentences))
	return s
}

func applyUpdate(s model.State, c Update) model.State {
	i := indexOf(s.Cards, c.ID)
	if i < 0 {
		return s
	}
	s = cloneState(s)
	card := &s.Cards[i]
	if c.Term != nil {
		card.Term = *c.Term
	}
	if c.Definition != nil {
		card.Definition = *c.Definition
	}
	// For the optional fields an empty value clears them back to absent;
	// empty-string-as-value is never stored.
	if c.PartOfSpeech != nil {
		if *c.PartOfSpeech == "" {
			card.PartOfSpeech = nil
		} else {
			card.PartOfSpeech = c.PartOfSpeech
		}
	}
	if c.ExampleSentences != nil {
		if len(*c.ExampleSentences) == 0 {
			card.ExampleSentences = nil
		} else {
			card.ExampleSentences = append([]string(nil), *c.ExampleSentences...)
		}
	}
	return s
}

func applyDelete(s model.State, c Delete) model.State {
	i := indexOf(s.Cards, c.ID)
	if i < 0 {
		return s
	}
	s = cloneState(s)
	s.Cards = append(s.Cards[:i], s.Cards[i+1:]...)
	s.CurrentIndex = clampIndex(s.CurrentIndex, len(VisibleCards(s)))
	return s
}

func applyToggleMastered(s model.State, c ToggleMastered) model.State {
	i := indexOf(s.Cards, c.ID)
	if i < 0 {
		return s
	}
	s = cloneState(s)
	s.Cards[i].Mastered = !s.Cards[i].Mastered
	// Mastering the current card under needsReview shrinks the view.
	s.CurrentIndex = clampIndex(s.CurrentIndex, len(VisibleCards(s)))
	return s
}

func applyShuffle(s model.State) model.State {
	s = cloneState(s)
	// Fisher-Yates, back to front.
	for i := len(s.Cards) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	}
	s.CurrentIndex = 0
	return s
}

// NewCard builds a card with a fresh ID and creation timestamp. Empty
// example sentences are dropped; an empty part of speech becomes absent.
func NewCard(term, definition string, mastered bool, pos *string, examples []string) model.Card {
	card := model.Card{
		ID:         uuid.Must(uuid.NewV4()),
		Term:       term,
		Definition: definition,
		Mastered:   mastered,
		CreatedAt:  time.Now().UTC(),
	}
	if pos != nil && *pos != "" {
		card.PartOfSpeech = pos
	}
	for _, ex := range examples {
		if ex != "" {
			card.ExampleSentences = append(card.ExampleSentences, ex)
		}
	}
	return card
}

// clampIndex forces i into [0, n-1], or 0 when the view is empty.
func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func indexOf(cards []model.Card, id uuid.UUID) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneState(s model.State) model.State {
	s.Cards = append([]model.Card(nil), s.Cards...)
	return s
}
