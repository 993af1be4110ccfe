package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avoronov/flashdeck/internal/deck"
	"github.com/avoronov/flashdeck/internal/model"
)

// cmdStudy runs an interactive flip session over the filtered view.
func cmdStudy(ctx context.Context, store *deck.Store, args []string) {
	fs := flag.NewFlagSet("study", flag.ExitOnError)
	filter := fs.String("filter", "all", "all | needsReview")
	_ = fs.Parse(args)

	f := model.Filter(*filter)
	if f != model.FilterAll && f != model.FilterNeedsReview {
		fmt.Fprintln(os.Stderr, "filter must be all or needsReview")
		os.Exit(1)
	}
	dispatch(ctx, store, deck.SetFilter{Filter: f})

	fmt.Println("study session: n(ext) p(rev) f(lip) m(aster) s(huffle) g <n> r(eview-only) a(ll) q(uit)")

	revealed := false
	showCurrent(store, revealed)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "q", "quit":
			return
		case "", "f", "flip":
			revealed = !revealed
		case "n", "next":
			revealed = false
			dispatch(ctx, store, deck.Navigate{Index: store.State().CurrentIndex + 1})
		case "p", "prev":
			revealed = false
			dispatch(ctx, store, deck.Navigate{Index: store.State().CurrentIndex - 1})
		case "g", "goto":
			idx, err := parseGoto(rest)
			if err != nil {
				fmt.Println("usage: g <position> (as displayed, starting at 1)")
				continue
			}
			revealed = false
			dispatch(ctx, store, deck.Navigate{Index: idx})
		case "m", "master":
			if card, ok := store.Current(); ok {
				dispatch(ctx, store, deck.ToggleMastered{ID: card.ID})
			}
			revealed = false
		case "s", "shuffle":
			revealed = false
			dispatch(ctx, store, deck.Shuffle{})
		case "r":
			revealed = false
			dispatch(ctx, store, deck.SetFilter{Filter: model.FilterNeedsReview})
		case "a":
			revealed = false
			dispatch(ctx, store, deck.SetFilter{Filter: model.FilterAll})
		default:
			fmt.Println("unknown command:", cmd)
			continue
		}
		showCurrent(store, revealed)
	}
}

// parseGoto converts the 1-based position shown in the prompt into the
// 0-based cursor index Navigate expects.
func parseGoto(rest string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func showCurrent(store *deck.Store, revealed bool) {
	s := store.State()
	visible := deck.VisibleCards(s)
	if len(visible) == 0 {
		fmt.Println("no cards to study under this filter")
		return
	}

	card := visible[s.CurrentIndex]
	fmt.Printf("[%d/%d] %s", s.CurrentIndex+1, len(visible), card.Term)
	if card.Mastered {
		fmt.Print(" *")
	}
	fmt.Println()
	if revealed {
		fmt.Printf("    %s\n", card.Definition)
		if card.PartOfSpeech != nil {
			fmt.Printf("    (%s)\n", *card.PartOfSpeech)
		}
		for _, ex := range card.ExampleSentences {
			fmt.Printf("    - %s\n", ex)
		}
	}
}
