package engine

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	a := makeTable("old.csv", []string{"id", "name", "email"},
		[]string{"1", "Anna", "anna@example.com"},
		[]string{"2", "Bernd", "bernd@example.com"},
		[]string{"3", "Clara", "clara@example.com"},
	)
	b := makeTable("new.csv", []string{"id", "name", "email"},
		[]string{"1", "Anna", "anna@example.com"},
		[]string{"2", "Bernd", "bernd@new.example.com"},
		[]string{"4", "Doris", "doris@example.com"},
	)

	entries, err := Compare(a, b, "id", DiffOptions{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	want := []struct {
		typ DiffType
		key string
	}{
		{DiffUnchanged, "1"},
		{DiffModified, "2"},
		{DiffRemoved, "3"},
		{DiffAdded, "4"},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Type != w.typ || entries[i].Key != w.key {
			t.Errorf("entry %d = %s/%s, want %s/%s", i, entries[i].Type, entries[i].Key, w.typ, w.key)
		}
	}

	// Modified entries carry both sides.
	mod := entries[1]
	if mod.Data["email"] != "bernd@new.example.com" {
		t.Errorf("modified data email = %q", mod.Data["email"])
	}
	if mod.OriginalData["email"] != "bernd@example.com" {
		t.Errorf("modified original email = %q", mod.OriginalData["email"])
	}
}

// Diff totals: every key in the union of both tables is classified exactly
// once.
func TestCompareTotals(t *testing.T) {
	a := makeTable("a.csv", []string{"k", "v"},
		[]string{"a", "1"}, []string{"b", "2"}, []string{"c", "3"},
	)
	b := makeTable("b.csv", []string{"k", "v"},
		[]string{"b", "2"}, []string{"c", "9"}, []string{"d", "4"}, []string{"e", "5"},
	)

	entries, err := Compare(a, b, "k", DiffOptions{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	counts := map[DiffType]int{}
	for _, e := range entries {
		counts[e.Type]++
	}
	union := 5 // a b c d e
	total := counts[DiffAdded] + counts[DiffRemoved] + counts[DiffModified] + counts[DiffUnchanged]
	if total != union {
		t.Errorf("classified %d keys, union has %d", total, union)
	}
	if counts[DiffRemoved] != 1 || counts[DiffAdded] != 2 || counts[DiffModified] != 1 || counts[DiffUnchanged] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

// Cells are matched by header name, not position: reordered columns with
// equal values must compare unchanged.
func TestCompareByHeaderName(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "name", "email"},
		[]string{"1", "Anna", "anna@example.com"},
	)
	b := makeTable("b.csv", []string{"email", "id", "name"},
		[]string{"anna@example.com", "1", "Anna"},
	)

	entries, err := Compare(a, b, "id", DiffOptions{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != DiffUnchanged {
		t.Fatalf("entries = %+v, want one unchanged", entries)
	}
}

// Zero overlapping headers beyond the key is legal, not an error.
func TestCompareDisjointHeaders(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "alt"}, []string{"1", "x"})
	b := makeTable("b.csv", []string{"neu", "id"}, []string{"y", "1"})

	entries, err := Compare(a, b, "id", DiffOptions{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	// The key column itself is shared and equal, so the entry is unchanged.
	if len(entries) != 1 || entries[0].Type != DiffUnchanged {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestCompareDuplicateKeys(t *testing.T) {
	a := makeTable("a.csv", []string{"id", "v"},
		[]string{"1", "first"},
		[]string{"1", "last"},
	)
	b := makeTable("b.csv", []string{"id", "v"},
		[]string{"1", "last"},
	)

	t.Run("last wins by default", func(t *testing.T) {
		entries, err := Compare(a, b, "id", DiffOptions{})
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if len(entries) != 1 || entries[0].Type != DiffUnchanged {
			t.Fatalf("entries = %+v, want one unchanged (last row wins)", entries)
		}
	})

	t.Run("error policy rejects duplicates", func(t *testing.T) {
		_, err := Compare(a, b, "id", DiffOptions{OnDuplicateKey: DuplicateError})
		var dup *DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("error = %v, want *DuplicateKeyError", err)
		}
		if dup.Key != "1" || dup.Table != "a.csv" {
			t.Errorf("dup = %+v", dup)
		}
	})
}

func TestCompareMissingKeyColumn(t *testing.T) {
	a := makeTable("a.csv", []string{"id"}, []string{"1"})
	b := makeTable("b.csv", []string{"key"}, []string{"1"})

	_, err := Compare(a, b, "id", DiffOptions{})
	var missing *MissingKeyColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingKeyColumnError", err)
	}
	if missing.Table != "b.csv" {
		t.Errorf("missing.Table = %q, want b.csv", missing.Table)
	}
}

// One-sided keys always classify the same way regardless of content.
func TestCompareSymmetryOfAbsence(t *testing.T) {
	a := makeTable("a.csv", []string{"id"}, []string{"only-a"})
	b := makeTable("b.csv", []string{"id"}, []string{"only-b"})

	entries, err := Compare(a, b, "id", DiffOptions{})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Type != DiffRemoved || entries[0].Key != "only-a" {
		t.Errorf("entry 0 = %+v, want removed/only-a", entries[0])
	}
	if entries[1].Type != DiffAdded || entries[1].Key != "only-b" {
		t.Errorf("entry 1 = %+v, want added/only-b", entries[1])
	}
}
