package engine

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, cells map[string]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for ref, val := range cells {
		if err := f.SetCellValue("Sheet1", ref, val); err != nil {
			t.Fatalf("SetCellValue(%s): %v", ref, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := workbookBytes(t, map[string]string{
		"A1": "id", "B1": "name",
		"A2": "1", "B2": "Anna",
		"A3": "2", "B3": "Bernd",
	})

	table, err := ParseWorkbook(bytes.NewReader(data), "", "book.xlsx")
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}

	if !reflect.DeepEqual(table.Headers, []string{"id", "name"}) {
		t.Errorf("headers = %v", table.Headers)
	}
	want := [][]string{{"1", "Anna"}, {"2", "Bernd"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %v, want %v", table.Rows, want)
	}
	if table.Name != "book.xlsx" {
		t.Errorf("name = %q", table.Name)
	}
}

func TestParseWorkbookPadsShortRows(t *testing.T) {
	data := workbookBytes(t, map[string]string{
		"A1": "id", "B1": "name",
		"A2": "1",
	})

	table, err := ParseWorkbook(bytes.NewReader(data), "", "book.xlsx")
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(table.Rows) != 1 || !table.RowIsWellFormed(table.Rows[0]) {
		t.Fatalf("rows = %v, want one well-formed row", table.Rows)
	}
	if !reflect.DeepEqual(table.Rows[0], []string{"1", ""}) {
		t.Errorf("row = %v, want padded", table.Rows[0])
	}
}

func TestParseWorkbookEmptySheet(t *testing.T) {
	data := workbookBytes(t, nil)

	_, err := ParseWorkbook(bytes.NewReader(data), "", "empty.xlsx")
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Errorf("error = %v, want *EmptyInputError", err)
	}
}

func TestParseWorkbookNotAWorkbook(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("just,a,csv\n")), "", "x.xlsx")
	var enc *EncodingError
	if !errors.As(err, &enc) {
		t.Errorf("error = %v, want *EncodingError", err)
	}
}
