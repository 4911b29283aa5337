package engine

import (
	"errors"
	"reflect"
	"testing"
)

func makeTable(name string, headers []string, rows ...[]string) Table {
	return NewTable(name, headers, rows, ',', "utf-8")
}

func TestMergeAppend(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "name"},
		[]string{"1", "Anna"},
		[]string{"2", "Bernd"},
	)
	b := makeTable("b.csv", []string{"id", "name"},
		[]string{"3", "Clara"},
	)

	merged, err := MergeAppend(a, b)
	if err != nil {
		t.Fatalf("MergeAppend: %v", err)
	}

	if got, want := len(merged.Rows), len(a.Rows)+len(b.Rows); got != want {
		t.Errorf("row count = %d, want %d", got, want)
	}
	if !reflect.DeepEqual(merged.Headers, a.Headers) {
		t.Errorf("headers = %v, want %v", merged.Headers, a.Headers)
	}
	if !reflect.DeepEqual(merged.Rows[2], []string{"3", "Clara"}) {
		t.Errorf("appended row = %v", merged.Rows[2])
	}

	// Inputs stay untouched.
	if len(a.Rows) != 2 || len(b.Rows) != 1 {
		t.Error("MergeAppend mutated its inputs")
	}
}

func TestMergeAppendSchemaMismatch(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "name"})
	b := makeTable("b.csv", []string{"id", "email"})

	_, err := MergeAppend(a, b)
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want *SchemaMismatchError", err)
	}
	if mismatch.Table != "b.csv" {
		t.Errorf("mismatch table = %q, want b.csv", mismatch.Table)
	}
}

func TestMergeAppendNoTables(t *testing.T) {
	_, err := MergeAppend()
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %v, want *EmptyInputError", err)
	}
}

func TestMergeJoin(t *testing.T) {
	people := makeTable("people.csv", []string{"id", "name"},
		[]string{"1", "Anna"},
		[]string{"2", "Bernd"},
		[]string{"3", "Clara"},
	)
	cities := makeTable("cities.csv", []string{"city", "id"},
		[]string{"Berlin", "1"},
		[]string{"Hamburg", "3"},
	)

	joined, err := MergeJoin([]Table{people, cities}, "id")
	if err != nil {
		t.Fatalf("MergeJoin: %v", err)
	}

	wantHeaders := []string{"id", "name", "city"}
	if !reflect.DeepEqual(joined.Headers, wantHeaders) {
		t.Errorf("headers = %v, want %v", joined.Headers, wantHeaders)
	}

	// Inner join: only keys present in all inputs, in first-table order.
	wantRows := [][]string{
		{"1", "Anna", "Berlin"},
		{"3", "Clara", "Hamburg"},
	}
	if !reflect.DeepEqual(joined.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", joined.Rows, wantRows)
	}
}

func TestMergeJoinFirstRowPerKeyWins(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "v"},
		[]string{"1", "first"},
		[]string{"1", "second"},
	)
	b := makeTable("b.csv", []string{"id", "w"},
		[]string{"1", "x"},
		[]string{"1", "y"},
	)

	joined, err := MergeJoin([]Table{a, b}, "id")
	if err != nil {
		t.Fatalf("MergeJoin: %v", err)
	}
	wantRows := [][]string{{"1", "first", "x"}}
	if !reflect.DeepEqual(joined.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", joined.Rows, wantRows)
	}
}

func TestMergeJoinMissingKeyColumn(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "name"})
	b := makeTable("b.csv", []string{"city"})

	_, err := MergeJoin([]Table{a, b}, "id")
	var missing *MissingKeyColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingKeyColumnError", err)
	}
	if missing.Table != "b.csv" || missing.Column != "id" {
		t.Errorf("missing = %+v", missing)
	}
}
