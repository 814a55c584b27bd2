package entity

// Record is one canonical case row for data transfer between layers.
// Every extracted field is optional: a pattern that never matched, or a
// column the upload did not carry, leaves the pointer nil rather than
// producing an error.
type Record struct {
	CaseNumber *string  `json:"case_number,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	AmountRaw  *string  `json:"amount_raw,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Source     string   `json:"source"`
	Page       *int     `json:"page,omitempty"`

	// TextPreview holds the leading slice of the originating page text on
	// document-derived records. Audit/export only; never used in matching.
	TextPreview string `json:"text_preview,omitempty"`

	// Extra carries unmapped tabular columns through normalization.
	Extra map[string]string `json:"extra,omitempty"`
}

// Str returns a pointer to s, for building optional fields.
func Str(s string) *string { return &s }

// Num returns a pointer to f, for building optional amounts.
func Num(f float64) *float64 { return &f }
