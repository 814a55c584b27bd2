package tabular

import (
	"strings"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/entity"
	"github.com/caseflow/casetracker/internal/extract"
)

// headerAliases maps lowercased source headers onto canonical fields. Amount
// columns normalize to the raw form; the numeric amount is derived below.
var headerAliases = map[string]string{
	"case":        constants.FieldCaseNumber,
	"case_number": constants.FieldCaseNumber,
	"caseno":      constants.FieldCaseNumber,
	"name":        constants.FieldName,
	"claimant":    constants.FieldName,
	"owner":       constants.FieldName,
	"amount":      constants.FieldAmountRaw,
	"excess":      constants.FieldAmountRaw,
	"address":     constants.FieldAddress,
}

// Normalize maps a decoded table onto canonical records. Header matching is
// case-insensitive; unmapped columns are carried through in Extra. When two
// aliases of the same canonical field appear in one table, the later column
// wins — inputs are expected to carry at most one alias per field.
func Normalize(t Table) []entity.Record {
	recs := make([]entity.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := entity.Record{Source: t.Source}
		for i, h := range t.Headers {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			canon, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
			if !ok {
				if cell != "" {
					if rec.Extra == nil {
						rec.Extra = make(map[string]string)
					}
					rec.Extra[h] = cell
				}
				continue
			}
			if cell == "" {
				continue
			}
			switch canon {
			case constants.FieldCaseNumber:
				rec.CaseNumber = entity.Str(cell)
			case constants.FieldName:
				rec.Name = entity.Str(cell)
			case constants.FieldAmountRaw:
				rec.AmountRaw = entity.Str(cell)
			case constants.FieldAddress:
				rec.Address = entity.Str(cell)
			}
		}
		if rec.Amount == nil && rec.AmountRaw != nil {
			rec.Amount = extract.ParseAmount(*rec.AmountRaw)
		}
		recs = append(recs, rec)
	}
	return recs
}
