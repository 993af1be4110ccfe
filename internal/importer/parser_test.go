package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avoronov/flashdeck/internal/deck"
	"github.com/avoronov/flashdeck/internal/model"
)

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "   ", "\n\n\t"} {
		res := Parse(raw)
		require.Empty(t, res.Successful)
		require.Empty(t, res.Failed)
	}
}

func TestParse_SingleLineSemicolonEntries(t *testing.T) {
	t.Parallel()
	res := Parse("apple, fruit; book, reading material; car, vehicle")
	require.Len(t, res.Successful, 3)
	require.Empty(t, res.Failed)

	require.Equal(t, "apple", res.Successful[0].Term)
	require.Equal(t, "fruit", res.Successful[0].Definition)
	require.Equal(t, "book", res.Successful[1].Term)
	require.Equal(t, "reading material", res.Successful[1].Definition)
	require.Equal(t, "car", res.Successful[2].Term)
	require.Equal(t, "vehicle", res.Successful[2].Definition)

	for _, c := range res.Successful {
		require.False(t, c.Mastered)
		require.False(t, c.CreatedAt.IsZero())
		require.NotEmpty(t, c.ID)
	}
}

func TestParse_MultiLineKeepsSemicolonsLiteral(t *testing.T) {
	t.Parallel()
	res := Parse("hund, dog; der Hund\nkatze, cat")
	require.Len(t, res.Successful, 2)
	require.Equal(t, "dog; der Hund", res.Successful[0].Definition)
	require.Equal(t, "katze", res.Successful[1].Term)
}

func TestParse_FullEntryWithPartOfSpeechAndExamples(t *testing.T) {
	t.Parallel()
	res := Parse("eloquent, fluent, adjective, Cherry blossoms are ephemeral | Morning dew is ephemeral")
	require.Len(t, res.Successful, 1)
	require.Empty(t, res.Failed)

	c := res.Successful[0]
	require.Equal(t, "eloquent", c.Term)
	require.Equal(t, "fluent", c.Definition)
	require.NotNil(t, c.PartOfSpeech)
	require.Equal(t, "adjective", *c.PartOfSpeech)
	require.Equal(t, []string{"Cherry blossoms are ephemeral", "Morning dew is ephemeral"}, c.ExampleSentences)
}

func TestParse_ExamplesFieldMayContainCommas(t *testing.T) {
	t.Parallel()
	res := Parse("run, move fast, verb, He ran, fast | She runs")
	require.Len(t, res.Successful, 1)
	require.Equal(t, []string{"He ran, fast", "She runs"}, res.Successful[0].ExampleSentences)
}

func TestParse_MissingSeparator(t *testing.T) {
	t.Parallel()
	res := Parse("onlyoneterm")
	require.Empty(t, res.Successful)
	require.Len(t, res.Failed, 1)
	require.Equal(t, "onlyoneterm", res.Failed[0].RawText)
	require.Contains(t, res.Failed[0].Err, "missing separator")
}

func TestParse_OneBadLineNeverAbortsTheBatch(t *testing.T) {
	t.Parallel()
	res := Parse("good, one\nbroken\nalso, fine\n, missing term")
	require.Len(t, res.Successful, 2)
	require.Len(t, res.Failed, 2)
	require.Equal(t, "good", res.Successful[0].Term)
	require.Equal(t, "also", res.Successful[1].Term)
	require.Contains(t, res.Failed[1].Err, "term is empty")
}

func TestParse_EmptyFields(t *testing.T) {
	t.Parallel()
	res := Parse("term,   ")
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "definition is empty")
}

func TestParse_LengthLimits(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 101)
	res := Parse(long + ", def")
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "101")
	require.Contains(t, res.Failed[0].Err, "100")

	res = Parse("term, " + strings.Repeat("x", 501))
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "definition too long")

	res = Parse("term, def, " + strings.Repeat("x", 51))
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "part of speech too long")

	res = Parse("term, def, noun, " + strings.Repeat("y", 501))
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "example sentence too long")
}

func TestParse_LengthLimitsCountCharactersNotBytes(t *testing.T) {
	t.Parallel()
	// 60 characters, 180 bytes: within the 100-char term limit.
	term := strings.Repeat("語", 60)
	res := Parse(term + ", definition")
	require.Empty(t, res.Failed)
	require.Len(t, res.Successful, 1)
	require.Equal(t, term, res.Successful[0].Term)

	res = Parse("тест, " + strings.Repeat("ё", 500))
	require.Empty(t, res.Failed)
	require.Len(t, res.Successful, 1)

	// Over the limit the reported count is characters too.
	res = Parse(strings.Repeat("語", 101) + ", def")
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "101 chars")
}

func TestParse_SingleLineWithTrailingNewlineStillSplitsOnSemicolons(t *testing.T) {
	t.Parallel()
	res := Parse("apple, fruit; book, reading material\n")
	require.Empty(t, res.Failed)
	require.Len(t, res.Successful, 2)
	require.Equal(t, "apple", res.Successful[0].Term)
	require.Equal(t, "book", res.Successful[1].Term)

	res = Parse("car, vehicle; bus, transit\r\n")
	require.Len(t, res.Successful, 2)
}

func TestParse_TooManyExamples(t *testing.T) {
	t.Parallel()
	res := Parse("term, def, noun, a | b | c | d | e | f")
	require.Len(t, res.Failed, 1)
	require.Contains(t, res.Failed[0].Err, "too many example sentences")

	// Empty segments are dropped before counting.
	res = Parse("term, def, noun, a | | b ||c | d | e")
	require.Len(t, res.Successful, 1)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Successful[0].ExampleSentences)
}

func TestParse_BlankEntriesSkipped(t *testing.T) {
	t.Parallel()
	res := Parse("a, one;; b, two;")
	require.Len(t, res.Successful, 2)
	require.Empty(t, res.Failed)
}

func TestFilterDuplicates(t *testing.T) {
	t.Parallel()
	existing := []model.Card{deck.NewCard("Apple", "fruit", false, nil, nil)}
	batch := []model.Card{
		deck.NewCard("apple", "dup of existing", false, nil, nil),
		deck.NewCard("banana", "fruit", false, nil, nil),
		deck.NewCard("BANANA", "dup within batch", false, nil, nil),
		deck.NewCard("cherry", "fruit", false, nil, nil),
	}

	unique, dupes := FilterDuplicates(batch, existing)
	require.Len(t, unique, 2)
	require.Equal(t, "banana", unique[0].Term)
	require.Equal(t, "cherry", unique[1].Term)
	require.Equal(t, []string{"apple", "BANANA"}, dupes)
}

func TestFilterDuplicates_NoExisting(t *testing.T) {
	t.Parallel()
	batch := []model.Card{deck.NewCard("a", "1", false, nil, nil)}
	unique, dupes := FilterDuplicates(batch, nil)
	require.Len(t, unique, 1)
	require.Empty(t, dupes)
}
