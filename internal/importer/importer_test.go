package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCSVHeaderSelectsColumn(t *testing.T) {
	in := "id,Word,note\n1,cafe,x\n2, bus stop ,y\n3,,z\n4\n"
	words, err := CSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if strings.Join(words, "|") != "cafe|bus stop" {
		t.Fatalf("unexpected words %q", words)
	}
}

func TestCSVDefaultsToSecondColumn(t *testing.T) {
	words, err := CSV(strings.NewReader("No.,English\n1,cafe\n2,shop\n3\n4, \n"))
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if strings.Join(words, "|") != "cafe|shop" {
		t.Fatalf("unexpected words %q", words)
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	if _, err := CSV(strings.NewReader("No.,English\n")); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
	if _, err := CSV(strings.NewReader("")); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords for empty file, got %v", err)
	}
}

func TestCSVErrors(t *testing.T) {
	if _, err := CSV(strings.NewReader("word\n \n")); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
	if _, err := CSV(strings.NewReader("\"unterminated\n")); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestText(t *testing.T) {
	words, err := Text(strings.NewReader("cafe\r\n\n  shop  \n"))
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if strings.Join(words, "|") != "cafe|shop" {
		t.Fatalf("unexpected words %q", words)
	}
	if _, err := Text(strings.NewReader("\n\n")); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestXLSX(t *testing.T) {
	buf := writeBook(t, [][]any{
		{"Picture", "Word"},
		{"cafe.png", "cafe"},
		{"", ""},
		{"pool.jpg", "swimming pool"},
	})
	words, err := XLSX(buf)
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if strings.Join(words, "|") != "cafe|swimming pool" {
		t.Fatalf("unexpected words %q", words)
	}
	numbered := writeBook(t, [][]any{
		{"No.", "English"},
		{1, "bakery"},
		{2, "zoo"},
	})
	words, err = XLSX(numbered)
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if strings.Join(words, "|") != "bakery|zoo" {
		t.Fatalf("unexpected words %q", words)
	}
	if _, err := XLSX(strings.NewReader("not a zip")); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFileDispatch(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "words.TXT")
	if err := os.WriteFile(txt, []byte("cafe\nzoo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := File(txt)
	if err != nil || len(words) != 2 {
		t.Fatalf("expected 2 words, got %v %v", words, err)
	}
	if _, err := File(filepath.Join(dir, "words.pdf")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := File(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func writeBook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}
