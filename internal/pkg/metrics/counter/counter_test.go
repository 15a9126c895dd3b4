package counter

import (
	"reflect"
	"testing"
)

func TestParsePairs(t *testing.T) {
	data := map[string]string{
		"7":      "3",
		"2":      "1",
		"42":     "10",
		"bogus":  "5",  // non-numeric id dropped
		"9":      "x",  // non-numeric increment dropped
		"13":     "0",  // zero increment dropped
		"100000": "-2", // decrements pass through
	}

	got := parsePairs(data)
	want := []pair{
		{id: 2, inc: 1},
		{id: 7, inc: 3},
		{id: 42, inc: 10},
		{id: 100000, inc: -2},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parsePairs = %+v, want %+v", got, want)
	}
}

func TestBuildCaseUpdate(t *testing.T) {
	pairs := []pair{
		{id: 2, inc: 1},
		{id: 7, inc: 3},
	}

	sql, args := buildCaseUpdate("vendors", "impression_count", pairs)

	wantSQL := "UPDATE vendors SET impression_count = impression_count + CASE id  WHEN ? THEN ? WHEN ? THEN ? END WHERE id IN (?,?)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}

	wantArgs := []interface{}{uint64(2), int64(1), uint64(7), int64(3), uint64(2), uint64(7)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildCaseUpdateSingle(t *testing.T) {
	sql, args := buildCaseUpdate("vendors", "impression_count", []pair{{id: 5, inc: 2}})

	wantSQL := "UPDATE vendors SET impression_count = impression_count + CASE id  WHEN ? THEN ? END WHERE id IN (?)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}
