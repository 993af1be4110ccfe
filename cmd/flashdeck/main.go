// Command flashdeck is a vocabulary flashcard study tool. Cards live in a
// local JSON file (or SQLite database); there is no server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	u "github.com/gofrs/uuid/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avoronov/flashdeck/internal/deck"
	"github.com/avoronov/flashdeck/internal/errs"
	"github.com/avoronov/flashdeck/internal/importer"
	"github.com/avoronov/flashdeck/internal/model"
	"github.com/avoronov/flashdeck/internal/storage"
)

// ---- config ----

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "flashdeck")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flashdeck")
}

func defaultStorePath() string {
	if v := os.Getenv("FLASHDECK_STORE"); v != "" {
		return v
	}
	return filepath.Join(cfgDir(), "cards.json")
}

// ---- utils ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `flashdeck
Usage:
  flashdeck [-store file | -sqlite file] [-v] <cmd> [args]

Commands:
  version
  add     -term <text> -def <text> [-pos <text>] [-ex "e1 | e2"]
  list    [-filter all|needsReview]
  show    -id <uuid>
  edit    -id <uuid> [-term <text>] [-def <text>] [-pos <text>] [-ex "e1 | e2"]
  rm      -id <uuid>
  master  -id <uuid>                               (toggle mastered)
  shuffle
  import  -file <path|->                           (bulk import pasted text)
  stats
  study   [-filter all|needsReview]                (interactive session)
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands over a hydrated deck store.
func main() {
	_ = godotenv.Load()

	storePath := flag.String("store", defaultStorePath(), "JSON store path")
	sqlitePath := flag.String("sqlite", "", "use SQLite store at this path instead")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("flashdeck %s (%s)\n", version, buildDate)
		return
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var st storage.Store
	if *sqlitePath != "" {
		sq, err := storage.OpenSQLite(ctx, *sqlitePath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v; changes will not be saved this session\n", err)
			st = storage.NewMemStore()
		} else {
			defer sq.Close()
			st = sq
		}
	} else {
		st = storage.NewFileStore(*storePath, logger)
	}

	store, err := deck.NewStore(ctx, st, logger)
	if err != nil {
		// Memory-only mode: warn and keep going.
		fmt.Fprintf(os.Stderr, "warning: %v; changes will not be saved this session\n", err)
		store, _ = deck.NewStore(ctx, storage.NewMemStore(), logger)
	}

	switch cmd {
	case "add":
		cmdAdd(ctx, store, args)
	case "list":
		cmdList(store, args)
	case "show":
		cmdShow(store, args)
	case "edit":
		cmdEdit(ctx, store, args)
	case "rm":
		cmdRm(ctx, store, args)
	case "master":
		cmdMaster(ctx, store, args)
	case "shuffle":
		dispatch(ctx, store, deck.Shuffle{})
		fmt.Println("ok")
	case "import":
		cmdImport(ctx, store, args)
	case "stats":
		printJSON(store.Stats())
	case "study":
		cmdStudy(ctx, store, args)
	default:
		usage()
	}
}

// dispatch runs a command and translates storage failures into
// user-actionable messages without dropping the in-memory change.
func dispatch(ctx context.Context, store *deck.Store, cmd deck.Command) {
	err := store.Dispatch(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrQuotaExceeded):
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	case errors.Is(err, errs.ErrStorageUnavailable):
		fmt.Fprintf(os.Stderr, "warning: %v; changes will not be saved\n", err)
	default:
		fmt.Fprintf(os.Stderr, "warning: save failed: %v\n", err)
	}
}

// ---- commands ----

func cmdAdd(ctx context.Context, store *deck.Store, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	term := fs.String("term", "", "term (required)")
	def := fs.String("def", "", "definition (required)")
	pos := fs.String("pos", "", "part of speech")
	ex := fs.String("ex", "", "example sentences, '|'-separated")
	_ = fs.Parse(args)

	t, d := strings.TrimSpace(*term), strings.TrimSpace(*def)
	if t == "" || d == "" {
		fmt.Fprintln(os.Stderr, "need -term and -def")
		os.Exit(1)
	}
	if utf8.RuneCountInString(t) > importer.MaxTermLen || utf8.RuneCountInString(d) > importer.MaxDefinitionLen {
		fmt.Fprintf(os.Stderr, "term limit %d chars, definition limit %d chars\n",
			importer.MaxTermLen, importer.MaxDefinitionLen)
		os.Exit(1)
	}

	var posPtr *string
	if p := strings.TrimSpace(*pos); p != "" {
		posPtr = &p
	}
	dispatch(ctx, store, deck.Add{
		Term:             t,
		Definition:       d,
		PartOfSpeech:     posPtr,
		ExampleSentences: splitExamples(*ex),
	})
	last := store.State().Cards
	fmt.Println(last[len(last)-1].ID)
}

func cmdList(store *deck.Store, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", "all", "all | needsReview")
	_ = fs.Parse(args)

	s := store.State()
	s.Filter = model.Filter(*filter)
	printJSON(deck.VisibleCards(s))
}

func cmdShow(store *deck.Store, args []string) {
	id := parseID("show", args)
	for _, c := range store.State().Cards {
		if c.ID == id {
			printJSON(c)
			return
		}
	}
	fmt.Fprintln(os.Stderr, "card not found")
	os.Exit(1)
}

func cmdEdit(ctx context.Context, store *deck.Store, args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	idStr := fs.String("id", "", "card id (uuid)")
	term := fs.String("term", "", "new term")
	def := fs.String("def", "", "new definition")
	pos := fs.String("pos", "", "new part of speech")
	ex := fs.String("ex", "", "new example sentences, '|'-separated")
	_ = fs.Parse(args)

	id, err := u.FromString(*idStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "need -id (uuid)")
		os.Exit(1)
	}

	upd := deck.Update{ID: id}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "term":
			if t := strings.TrimSpace(*term); t != "" {
				upd.Term = &t
			}
		case "def":
			if d := strings.TrimSpace(*def); d != "" {
				upd.Definition = &d
			}
		case "pos":
			p := strings.TrimSpace(*pos)
			upd.PartOfSpeech = &p
		case "ex":
			exs := splitExamples(*ex)
			upd.ExampleSentences = &exs
		}
	})
	dispatch(ctx, store, upd)
	fmt.Println("ok")
}

func cmdRm(ctx context.Context, store *deck.Store, args []string) {
	dispatch(ctx, store, deck.Delete{ID: parseID("rm", args)})
	fmt.Println("ok")
}

func cmdMaster(ctx context.Context, store *deck.Store, args []string) {
	dispatch(ctx, store, deck.ToggleMastered{ID: parseID("master", args)})
	fmt.Println("ok")
}

func cmdImport(ctx context.Context, store *deck.Store, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "text file ('-'=stdin)")
	_ = fs.Parse(args)
	if *file == "" {
		fmt.Fprintln(os.Stderr, "need -file")
		os.Exit(1)
	}

	raw, err := readAll(*file)
	if err != nil {
		fail(err)
	}

	res := importer.Parse(string(raw))
	unique, dupes := importer.FilterDuplicates(res.Successful, store.State().Cards)
	if len(unique) > 0 {
		dispatch(ctx, store, deck.BulkImport{Cards: unique})
	}

	printJSON(struct {
		Added      int                    `json:"added"`
		Duplicates []string               `json:"duplicates,omitempty"`
		Failed     []importer.FailedEntry `json:"failed,omitempty"`
	}{len(unique), dupes, res.Failed})
}

// ---- helpers ----

func parseID(name string, args []string) u.UUID {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	idStr := fs.String("id", "", "card id (uuid)")
	_ = fs.Parse(args)
	id, err := u.FromString(*idStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "need -id (uuid)")
		os.Exit(1)
	}
	return id
}

func splitExamples(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, ex := range strings.Split(raw, "|") {
		if ex = strings.TrimSpace(ex); ex != "" {
			out = append(out, ex)
		}
	}
	return out
}
