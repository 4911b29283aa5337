package engine

import (
	"errors"
	"testing"
)

func TestHeaderIndex(t *testing.T) {
	table := NewTable("people", []string{"Id", "Name", "Email", "Name"}, nil, ',', "utf-8")

	tests := []struct {
		name    string
		col     string
		want    int
		wantErr bool
	}{
		{"first column", "Id", 0, false},
		{"middle column", "Email", 2, false},
		{"duplicate name returns first occurrence", "Name", 1, false},
		{"case sensitive", "id", -1, true},
		{"unknown column", "Phone", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.HeaderIndex(tt.col)
			if tt.wantErr {
				if !errors.Is(err, ErrColumnNotFound) {
					t.Fatalf("error = %v, want ErrColumnNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HeaderIndex(%q): %v", tt.col, err)
			}
			if got != tt.want {
				t.Errorf("HeaderIndex(%q) = %d, want %d", tt.col, got, tt.want)
			}
		})
	}
}

func TestRowIsWellFormed(t *testing.T) {
	table := NewTable("t", []string{"a", "b", "c"}, nil, ',', "utf-8")

	if !table.RowIsWellFormed([]string{"1", "2", "3"}) {
		t.Error("matching row reported malformed")
	}
	if table.RowIsWellFormed([]string{"1", "2"}) {
		t.Error("short row reported well-formed")
	}
	if table.RowIsWellFormed([]string{"1", "2", "3", "4"}) {
		t.Error("long row reported well-formed")
	}
}

func TestCell(t *testing.T) {
	table := NewTable("t", []string{"a", "b", "c"}, nil, ',', "utf-8")
	row := []string{"x", "y"}

	if got := table.Cell(row, 1); got != "y" {
		t.Errorf("Cell(1) = %q, want %q", got, "y")
	}
	if got := table.Cell(row, 2); got != "" {
		t.Errorf("Cell past row end = %q, want empty", got)
	}
	if got := table.Cell(row, -1); got != "" {
		t.Errorf("Cell(-1) = %q, want empty", got)
	}
}

func TestNewTableDefaults(t *testing.T) {
	table := NewTable("t", []string{"a"}, nil, 0, "")
	if table.Delimiter != ',' {
		t.Errorf("delimiter = %q, want comma", table.Delimiter)
	}
	if table.Encoding != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", table.Encoding)
	}

	other := NewTable("t", []string{"a"}, nil, 0, "")
	if table.ID == other.ID {
		t.Error("two tables share an ID")
	}
}
