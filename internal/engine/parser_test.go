package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{
			name: "comma separated",
			text: "a,b,c\n1,2,3\n",
			want: ',',
		},
		{
			name: "semicolon separated",
			text: "Vorname;Nachname\nAnna;Meier\n",
			want: ';',
		},
		{
			name: "tab separated",
			text: "a\tb\tc\n1\t2\t3\n",
			want: '\t',
		},
		{
			name: "pipe separated",
			text: "a|b|c\n1|2|3\n",
			want: '|',
		},
		{
			name: "semicolon wins over stray commas",
			text: "Name;Kommentar\nAnna;Hallo, du, da\nBernd;Moin\n",
			want: ';',
		},
		{
			name: "single column defaults to comma",
			text: "Name\nAnna\nBernd\n",
			want: ',',
		},
		{
			name: "inconsistent counts fall back to first line",
			text: "a;b;c\nd;e\n",
			want: ';',
		},
		{
			name: "empty text defaults to comma",
			text: "",
			want: ',',
		},
		{
			name: "higher consistent count beats lower",
			text: "a|b|c;d\ne|f|g;h\n",
			want: '|',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.text); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		opts        ParseOptions
		wantHeaders []string
		wantRows    [][]string
		wantDelim   rune
	}{
		{
			name:        "comma with header",
			data:        "id,name\n1,Anna\n2,Bernd\n",
			opts:        ParseOptions{HasHeader: true},
			wantHeaders: []string{"id", "name"},
			wantRows:    [][]string{{"1", "Anna"}, {"2", "Bernd"}},
			wantDelim:   ',',
		},
		{
			name:        "explicit delimiter overrides detection",
			data:        "a;b\n1;2\n",
			opts:        ParseOptions{Delimiter: ';', HasHeader: true},
			wantHeaders: []string{"a", "b"},
			wantRows:    [][]string{{"1", "2"}},
			wantDelim:   ';',
		},
		{
			name:        "quoted field with embedded delimiter",
			data:        "name,comment\nAnna,\"hello, world\"\n",
			opts:        ParseOptions{HasHeader: true},
			wantHeaders: []string{"name", "comment"},
			wantRows:    [][]string{{"Anna", "hello, world"}},
			wantDelim:   ',',
		},
		{
			name:        "quoted field with embedded newline",
			data:        "name,note\nAnna,\"line1\nline2\"\n",
			opts:        ParseOptions{HasHeader: true},
			wantHeaders: []string{"name", "note"},
			wantRows:    [][]string{{"Anna", "line1\nline2"}},
			wantDelim:   ',',
		},
		{
			name:        "whitespace preserved",
			data:        "a,b\n  x , y \n",
			opts:        ParseOptions{Delimiter: ',', HasHeader: true},
			wantHeaders: []string{"a", "b"},
			wantRows:    [][]string{{"  x ", " y "}},
			wantDelim:   ',',
		},
		{
			name:        "no header synthesizes positional labels",
			data:        "1,2,3\n4,5,6\n",
			opts:        ParseOptions{Delimiter: ','},
			wantHeaders: []string{"Column 1", "Column 2", "Column 3"},
			wantRows:    [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
			wantDelim:   ',',
		},
		{
			name:        "ragged rows preserved",
			data:        "a,b,c\n1,2\n3,4,5,6\n",
			opts:        ParseOptions{Delimiter: ',', HasHeader: true},
			wantHeaders: []string{"a", "b", "c"},
			wantRows:    [][]string{{"1", "2"}, {"3", "4", "5", "6"}},
			wantDelim:   ',',
		},
		{
			name:        "BOM stripped",
			data:        "\xEF\xBB\xBFid,name\n1,Anna\n",
			opts:        ParseOptions{HasHeader: true},
			wantHeaders: []string{"id", "name"},
			wantRows:    [][]string{{"1", "Anna"}},
			wantDelim:   ',',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.opts)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got.Headers, tt.wantHeaders) {
				t.Errorf("headers = %v, want %v", got.Headers, tt.wantHeaders)
			}
			if !reflect.DeepEqual(got.Rows, tt.wantRows) {
				t.Errorf("rows = %v, want %v", got.Rows, tt.wantRows)
			}
			if got.Delimiter != tt.wantDelim {
				t.Errorf("delimiter = %q, want %q", got.Delimiter, tt.wantDelim)
			}
			if got.ID == "" {
				t.Error("table has no ID")
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, data := range []string{"", "   ", "\n\n", "\r\n"} {
		_, err := Parse([]byte(data), ParseOptions{HasHeader: true, Name: "empty.csv"})
		var empty *EmptyInputError
		if !errors.As(err, &empty) {
			t.Errorf("Parse(%q) error = %v, want *EmptyInputError", data, err)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	t.Run("invalid utf-8 rejected", func(t *testing.T) {
		_, err := Parse([]byte("caf\xe9,x\n1,2\n"), ParseOptions{HasHeader: true})
		var enc *EncodingError
		if !errors.As(err, &enc) {
			t.Fatalf("error = %v, want *EncodingError", err)
		}
	})

	t.Run("latin-1 decoded", func(t *testing.T) {
		got, err := Parse([]byte("name\ncaf\xe9\n"), ParseOptions{Encoding: "latin-1", HasHeader: true})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got.Rows[0][0] != "café" {
			t.Errorf("cell = %q, want %q", got.Rows[0][0], "café")
		}
		if got.Encoding != "iso-8859-1" {
			t.Errorf("encoding = %q, want iso-8859-1", got.Encoding)
		}
	})

	t.Run("windows-1252 decoded", func(t *testing.T) {
		// 0x80 is the euro sign in Windows-1252.
		got, err := Parse([]byte("price\n\x8042\n"), ParseOptions{Encoding: "windows-1252", HasHeader: true})
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got.Rows[0][0] != "€42" {
			t.Errorf("cell = %q, want %q", got.Rows[0][0], "€42")
		}
	})

	t.Run("unsupported encoding rejected", func(t *testing.T) {
		_, err := Parse([]byte("a,b\n"), ParseOptions{Encoding: "ebcdic", HasHeader: true})
		var enc *EncodingError
		if !errors.As(err, &enc) {
			t.Fatalf("error = %v, want *EncodingError", err)
		}
	})
}

func TestEmbeddedDelimiter(t *testing.T) {
	tests := []struct {
		field   string
		current rune
		want    rune
		ok      bool
	}{
		{"Vorname;Nachname", ',', ';', true},
		{"Vorname,Nachname", ';', ',', true},
		{"Vorname;Nachname", ';', ',', false}, // only the current delimiter present
		{"Vorname", ',', 0, false},
		{"a;b,c", '|', ';', true}, // semicolon favored over comma
	}

	for _, tt := range tests {
		got, ok := embeddedDelimiter(tt.field, tt.current)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("embeddedDelimiter(%q, %q) = %q, %v; want %q, %v",
				tt.field, tt.current, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delim rune
	}{
		{"comma", "id,name\n1,Anna\n2,Bernd\n", ','},
		{"semicolon", "id;name\n1;Anna\n", ';'},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b\nx|y\n", '|'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.text), ParseOptions{Delimiter: tt.delim, HasHeader: true})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := Serialize(table)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			if got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestSerializeQuotesWhenNeeded(t *testing.T) {
	table := NewTable("t", []string{"name", "comment"},
		[][]string{{"Anna", "hello, world"}}, ',', "utf-8")

	got, err := Serialize(table)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := "name,comment\nAnna,\"hello, world\"\n"
	if got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}
