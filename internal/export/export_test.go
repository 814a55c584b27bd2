package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/caseflow/casetracker/internal/entity"
	"github.com/caseflow/casetracker/internal/pipeline"
)

func page(n int) *int { return &n }

func sampleRecords() []entity.Record {
	return []entity.Record{
		{
			CaseNumber: entity.Str("A1"),
			Name:       entity.Str("Jane Doe"),
			Amount:     entity.Num(5000),
			AmountRaw:  entity.Str("$5,000"),
			Address:    entity.Str("1 Elm St, Dayton, OH 45402"),
			Source:     "cases.csv",
		},
		{
			CaseNumber: entity.Str("B2"),
			Amount:     entity.Num(12500.5),
			Source:     "b2.pdf",
			Page:       page(3),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "case_number,name,amount,amount_raw,address,source,page" {
		t.Errorf("header = %s", lines[0])
	}
	if lines[1] != `A1,Jane Doe,5000,"$5,000","1 Elm St, Dayton, OH 45402",cases.csv,` {
		t.Errorf("row 1 = %s", lines[1])
	}
	if lines[2] != "B2,,12500.5,,,b2.pdf,3" {
		t.Errorf("row 2 = %s", lines[2])
	}
}

func TestWriteCSVEmptyTableStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "case_number,name,amount,amount_raw,address,source,page" {
		t.Errorf("output = %q", got)
	}
}

func TestPageTextsZIP(t *testing.T) {
	pages := []pipeline.PageText{
		{Source: "a.pdf", Page: 1, Text: "first page"},
		{Source: "a.pdf", Page: 2, Text: "second page"},
		{Source: "b.pdf", Page: 1, Text: "other doc"},
	}
	b, err := PageTextsZIP(pages)
	if err != nil {
		t.Fatalf("PageTextsZIP() error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	want := map[string]string{
		"a.pdf_p1.txt": "first page",
		"a.pdf_p2.txt": "second page",
		"b.pdf_p1.txt": "other doc",
	}
	if len(zr.File) != len(want) {
		t.Fatalf("archive has %d entries, want %d", len(zr.File), len(want))
	}
	for _, f := range zr.File {
		text, ok := want[f.Name]
		if !ok {
			t.Errorf("unexpected entry %s", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if string(got) != text {
			t.Errorf("%s = %q, want %q", f.Name, got, text)
		}
	}
}

func TestCasesXLSX(t *testing.T) {
	b, err := NewService(nil).CasesXLSX(sampleRecords())
	if err != nil {
		t.Fatalf("CasesXLSX() error = %v", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	if v, _ := wb.GetCellValue("Cases", "A1"); v != "Case Number" {
		t.Errorf("A1 = %q", v)
	}
	if v, _ := wb.GetCellValue("Cases", "A2"); v != "A1" {
		t.Errorf("A2 = %q", v)
	}
	if v, _ := wb.GetCellValue("Cases", "C3"); v != "12500.5" {
		t.Errorf("C3 = %q", v)
	}
	if v, _ := wb.GetCellValue("Cases", "G3"); v != "3" {
		t.Errorf("G3 = %q", v)
	}
}
