package reconcile

import (
	"math"
	"sort"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/entity"
	"github.com/caseflow/casetracker/internal/extract"
)

// Options control filtering and deduplication for one reconciliation pass.
type Options struct {
	MinAmount    float64
	DedupeOnCase bool
}

// Result holds the reconciled table and the fixed high-value view.
type Result struct {
	Records   []entity.Record
	HighValue []entity.Record
}

// Reconcile merges tabular and document-derived records into one canonical
// table: tabular records first, each source's relative order preserved. Every
// record gets a coerced numeric amount, records below MinAmount are dropped
// (absent amount counts as 0), and with DedupeOnCase the highest-amount
// record per case number survives, earliest-first on ties.
func Reconcile(tabular, fromDocs []entity.Record, opts Options) Result {
	merged := make([]entity.Record, 0, len(tabular)+len(fromDocs))
	merged = append(merged, tabular...)
	merged = append(merged, fromDocs...)

	for i := range merged {
		merged[i].Amount = amountOf(&merged[i])
	}

	kept := make([]entity.Record, 0, len(merged))
	for _, r := range merged {
		v := 0.0
		if r.Amount != nil {
			v = *r.Amount
		}
		if v >= opts.MinAmount {
			kept = append(kept, r)
		}
	}

	if opts.DedupeOnCase {
		kept = dedupeByCase(kept)
	}

	high := make([]entity.Record, 0)
	for _, r := range kept {
		if r.Amount != nil && *r.Amount >= constants.HighValueThreshold {
			high = append(high, r)
		}
	}
	return Result{Records: kept, HighValue: high}
}

// amountOf coerces a record's amount: an already-numeric value passes
// through, otherwise the raw form is parsed. Never an error; unparseable
// stays absent.
func amountOf(r *entity.Record) *float64 {
	if a := extract.CoerceAmount(r.Amount); a != nil {
		return a
	}
	if r.AmountRaw != nil {
		return extract.ParseAmount(*r.AmountRaw)
	}
	return nil
}

// dedupeByCase sorts descending by amount (stable, so position in the merged
// sequence breaks ties) and keeps the first record seen per case number.
// Records without a case number are never collapsed. Re-running on already
// deduplicated output is a no-op.
func dedupeByCase(recs []entity.Record) []entity.Record {
	sorted := make([]entity.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortValue(sorted[i]) > sortValue(sorted[j])
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]entity.Record, 0, len(sorted))
	for _, r := range sorted {
		if r.CaseNumber != nil {
			if _, dup := seen[*r.CaseNumber]; dup {
				continue
			}
			seen[*r.CaseNumber] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// sortValue ranks absent amounts below any real value.
func sortValue(r entity.Record) float64 {
	if r.Amount == nil {
		return math.Inf(-1)
	}
	return *r.Amount
}
