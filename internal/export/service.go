package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caseflow/casetracker/internal/entity"
)

// Service produces XLSX bytes for the reconciled case table.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// CasesXLSX returns an XLSX workbook (as bytes) for the given records.
func (s *Service) CasesXLSX(recs []entity.Record) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Cases"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Case Number",
		"Name",
		"Amount",
		"Amount (raw)",
		"Address",
		"Source",
		"Page",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, strOrEmpty(r.CaseNumber))
		write(2, strOrEmpty(r.Name))
		if r.Amount != nil {
			write(3, *r.Amount)
		}
		write(4, strOrEmpty(r.AmountRaw))
		write(5, strOrEmpty(r.Address))
		write(6, r.Source)
		if r.Page != nil {
			write(7, *r.Page)
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // case number
	_ = f.SetColWidth(sheet, "B", "B", 28) // name
	_ = f.SetColWidth(sheet, "C", "D", 14) // amounts
	_ = f.SetColWidth(sheet, "E", "E", 48) // address
	_ = f.SetColWidth(sheet, "F", "F", 32) // source
	_ = f.SetColWidth(sheet, "G", "G", 8)  // page

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
