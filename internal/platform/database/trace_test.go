package database

import (
	"strings"
	"testing"
)

func TestFormatQueryForTrace(t *testing.T) {
	got := formatQueryForTrace(" SELECT   *\nFROM picks \t WHERE league_id = $1 ")
	want := "SELECT * FROM picks WHERE league_id = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestFormatQueryForTrace_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 600)
	got := formatQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 {
		t.Fatalf("unexpected truncated length: %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-8:])
	}
}
