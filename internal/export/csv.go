package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/entity"
)

// WriteCSV renders the canonical table as comma-separated UTF-8 text with a
// header row. Absent fields render as empty cells.
func WriteCSV(w io.Writer, recs []entity.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(constants.CanonicalColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			strOrEmpty(r.CaseNumber),
			strOrEmpty(r.Name),
			amountCell(r.Amount),
			strOrEmpty(r.AmountRaw),
			strOrEmpty(r.Address),
			r.Source,
			pageCell(r.Page),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func amountCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func pageCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
