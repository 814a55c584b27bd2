package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/caseflow/casetracker/constants"
)

// File is one uploaded tabular file before decoding.
type File struct {
	Name string
	Data []byte
}

// Table is a decoded tabular file: a header row plus string cells, tagged
// with its originating file name.
type Table struct {
	Source  string
	Headers []string
	Rows    [][]string
}

// Read decodes a CSV or XLSX upload into a Table. The first row is taken as
// the header. A read failure is reported to the caller, who treats it as a
// per-file warning rather than a pipeline failure.
func Read(f File) (Table, error) {
	ext := constants.NormalizeExt(filepath.Ext(f.Name))
	switch ext {
	case "csv":
		return readCSV(f)
	case "xlsx", "xls":
		return readXLSX(f)
	default:
		return Table{}, fmt.Errorf("unsupported tabular extension: %q", ext)
	}
}

func readCSV(f File) (Table, error) {
	r := csv.NewReader(bytes.NewReader(f.Data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return Table{Source: f.Name}, nil
	}
	return Table{Source: f.Name, Headers: rows[0], Rows: rows[1:]}, nil
}

func readXLSX(f File) (Table, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(f.Data))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return Table{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Table{Source: f.Name}, nil
	}
	return Table{Source: f.Name, Headers: rows[0], Rows: rows[1:]}, nil
}
