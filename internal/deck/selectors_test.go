package deck

import (
	"testing"

	"github.com/avoronov/flashdeck/internal/model"
)

func TestVisibleCards_FilterNeedsReview(t *testing.T) {
	t.Parallel()
	s := stateWith(card("a", false), card("b", true))
	s.Filter = model.FilterNeedsReview

	visible := VisibleCards(s)
	if len(visible) != 1 || visible[0].Term != "a" {
		t.Fatalf("visible under needsReview: %v", terms(visible))
	}

	s.Filter = model.FilterAll
	if len(VisibleCards(s)) != 2 {
		t.Fatalf("filter=all must show everything")
	}
}

func TestCurrentCard(t *testing.T) {
	t.Parallel()
	if _, ok := CurrentCard(model.NewState()); ok {
		t.Fatalf("empty collection has no current card")
	}

	s := stateWith(card("a", false), card("b", false))
	s.CurrentIndex = 1
	c, ok := CurrentCard(s)
	if !ok || c.Term != "b" {
		t.Fatalf("current card: ok=%v term=%q", ok, c.Term)
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()
	if st := ComputeStats(model.NewState()); st.MasteredPercentage != 0 || st.Total != 0 {
		t.Fatalf("empty stats: %+v", st)
	}

	s := stateWith(card("a", false), card("b", true))
	st := ComputeStats(s)
	if st.Total != 2 || st.Mastered != 1 || st.NeedsReview != 1 || st.MasteredPercentage != 50 {
		t.Fatalf("stats: %+v", st)
	}

	// Rounding: 1 of 3 mastered is 33, 2 of 3 is 67.
	s = stateWith(card("a", true), card("b", false), card("c", false))
	if p := ComputeStats(s).MasteredPercentage; p != 33 {
		t.Fatalf("percentage rounding: got %d want 33", p)
	}
	s = stateWith(card("a", true), card("b", true), card("c", false))
	if p := ComputeStats(s).MasteredPercentage; p != 67 {
		t.Fatalf("percentage rounding: got %d want 67", p)
	}
}
