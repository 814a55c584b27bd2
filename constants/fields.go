package constants

import "strings"

// Canonical field names shared by extraction, normalization, and export.
const (
	FieldCaseNumber = "case_number"
	FieldName       = "name"
	FieldAmount     = "amount"
	FieldAmountRaw  = "amount_raw"
	FieldAddress    = "address"
	FieldSource     = "source"
	FieldPage       = "page"
)

// CanonicalColumns is the column order of the merged table and its exports.
var CanonicalColumns = []string{
	FieldCaseNumber,
	FieldName,
	FieldAmount,
	FieldAmountRaw,
	FieldAddress,
	FieldSource,
	FieldPage,
}

// HighValueThreshold is the fixed cutoff for the "over 10k" view.
const HighValueThreshold = 10000

// PreviewLimit caps the page-text preview stored on extracted records.
// The preview is for audit and export only; matching always runs on the
// full page text.
const PreviewLimit = 2000

// AllowedTabularExtensions holds the accepted tabular upload extensions.
var AllowedTabularExtensions = map[string]struct{}{
	"csv":  {},
	"xlsx": {},
	"xls":  {},
}

// AllowedDocumentExtensions holds the accepted document upload extensions.
var AllowedDocumentExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsTabularExt reports whether ext (normalized) is a tabular upload type.
func IsTabularExt(ext string) bool {
	_, ok := AllowedTabularExtensions[ext]
	return ok
}

// IsDocumentExt reports whether ext (normalized) is a document upload type.
func IsDocumentExt(ext string) bool {
	_, ok := AllowedDocumentExtensions[ext]
	return ok
}
