package extract

import (
	"strings"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/entity"
	"github.com/caseflow/casetracker/internal/rules"
)

// Extract applies the rule set to one block of page text and returns the
// field record. For each field, patterns are tried in declared order against
// the full text; the first pattern that matches anywhere wins and its first
// capture group is taken, trimmed. A field with no matching pattern stays
// absent. Fields are matched independently; the caller fills Page and Source.
func Extract(text string, rs *rules.RuleSet) entity.Record {
	var rec entity.Record
	for _, fr := range rs.Fields() {
		for _, pat := range fr.Patterns {
			m := pat.FindStringSubmatch(text)
			if m == nil || len(m) < 2 {
				continue
			}
			v := strings.TrimSpace(m[1])
			setField(&rec, fr.Field, v)
			break
		}
	}
	if rec.AmountRaw != nil {
		rec.Amount = ParseAmount(*rec.AmountRaw)
	}
	return rec
}

func setField(rec *entity.Record, field, value string) {
	switch field {
	case constants.FieldCaseNumber:
		rec.CaseNumber = &value
	case constants.FieldName:
		rec.Name = &value
	case constants.FieldAmount:
		// the amount rule captures the raw form; the numeric value is
		// derived afterwards
		rec.AmountRaw = &value
	case constants.FieldAddress:
		rec.Address = &value
	}
}
