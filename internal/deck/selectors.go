package deck

import (
	"math"

	"github.com/avoronov/flashdeck/internal/model"
)

// VisibleCards returns the cards passing the active filter, order preserved.
func VisibleCards(s model.State) []model.Card {
	if s.Filter != model.FilterNeedsReview {
		return s.Cards
	}
	var out []model.Card
	for _, c := range s.Cards {
		if !c.Mastered {
			out = append(out, c)
		}
	}
	return out
}

// CurrentCard returns the card under the study cursor, or false when the
// visible set is empty.
func CurrentCard(s model.State) (model.Card, bool) {
	visible := VisibleCards(s)
	if len(visible) == 0 {
		return model.Card{}, false
	}
	return visible[s.CurrentIndex], true
}

// ComputeStats aggregates mastery progress over the whole collection,
// ignoring the active filter.
func ComputeStats(s model.State) model.Stats {
	st := model.Stats{Total: len(s.Cards)}
	for _, c := range s.Cards {
		if c.Mastered {
			st.Mastered++
		} else {
			st.NeedsReview++
		}
	}
	if st.Total > 0 {
		st.MasteredPercentage = int(math.Round(float64(st.Mastered) / float64(st.Total) * 100))
	}
	return st
}
