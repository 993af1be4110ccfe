package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func Test_cfgDir_UsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := cfgDir(); got != filepath.Join(dir, "flashdeck") {
		t.Fatalf("cfgDir=%q", got)
	}
}

func Test_defaultStorePath(t *testing.T) {
	t.Setenv("FLASHDECK_STORE", "/tmp/deck/cards.json")
	if got := defaultStorePath(); got != "/tmp/deck/cards.json" {
		t.Fatalf("env override ignored: %q", got)
	}

	t.Setenv("FLASHDECK_STORE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	got := defaultStorePath()
	if !strings.HasSuffix(got, filepath.Join("flashdeck", "cards.json")) {
		t.Fatalf("default path unexpected: %q", got)
	}
}

func Test_parseGoto_IsOneBased(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"1", 0},
		{" 3 ", 2},
		{"2", 1},
	} {
		got, err := parseGoto(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("parseGoto(%q)=%d,%v want %d", tc.in, got, err, tc.want)
		}
	}
	if _, err := parseGoto("abc"); err == nil {
		t.Fatalf("want error on non-numeric position")
	}
}

func Test_splitExamples(t *testing.T) {
	got := splitExamples(" one | | two|three ")
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("splitExamples=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitExamples=%v", got)
		}
	}
	if splitExamples("   ") != nil {
		t.Fatalf("blank input must yield nil")
	}
}
