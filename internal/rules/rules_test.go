package rules

import (
	"testing"

	"github.com/caseflow/casetracker/constants"
)

func TestDefaultFieldOrder(t *testing.T) {
	fields := Default().Fields()
	want := []string{
		constants.FieldCaseNumber,
		constants.FieldName,
		constants.FieldAmount,
		constants.FieldAddress,
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.Field != want[i] {
			t.Errorf("field[%d] = %s, want %s", i, f.Field, want[i])
		}
	}
}

func TestDefaultAmountPatternOrder(t *testing.T) {
	// first amount pattern is deliberately the loose $-form; reordering
	// would change which match wins downstream
	var amount FieldRules
	for _, f := range Default().Fields() {
		if f.Field == constants.FieldAmount {
			amount = f
		}
	}
	if len(amount.Patterns) != 2 {
		t.Fatalf("amount patterns = %d, want 2", len(amount.Patterns))
	}
	if !amount.Patterns[0].MatchString("Amount: $5,000") {
		t.Error("loose pattern should match a labeled amount too")
	}
	if !amount.Patterns[0].MatchString("approx 75 units") {
		t.Error("first pattern must be the loose one (bare numbers match)")
	}
}

func TestLoadEmptyYieldsDefault(t *testing.T) {
	rs, warn := Load("")
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	if rs != Default() {
		t.Fatal("empty config should yield the built-in default")
	}
}

func TestLoadValidOverride(t *testing.T) {
	rs, warn := Load(`{"case_number": ["FILE\\s+#(\\d+)"]}`)
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	fields := rs.Fields()
	if len(fields) != 1 || fields[0].Field != constants.FieldCaseNumber {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if m := fields[0].Patterns[0].FindStringSubmatch("FILE #42"); m == nil || m[1] != "42" {
		t.Fatalf("override pattern did not apply: %v", m)
	}
}

func TestLoadMalformedJSONFallsBack(t *testing.T) {
	rs, warn := Load(`{"case_number": [`)
	if warn == "" {
		t.Fatal("expected a warning for malformed JSON")
	}
	if rs != Default() {
		t.Fatal("malformed config should fall back to the default")
	}
}

func TestLoadSchemaViolationFallsBack(t *testing.T) {
	for _, cfg := range []string{
		`{"unknown_field": ["x"]}`,
		`{"case_number": []}`,
		`{"case_number": [42]}`,
		`["not", "an", "object"]`,
	} {
		rs, warn := Load(cfg)
		if warn == "" {
			t.Errorf("Load(%s): expected a warning", cfg)
		}
		if rs != Default() {
			t.Errorf("Load(%s): expected default fallback", cfg)
		}
	}
}

func TestLoadEmptyObjectExtractsNothing(t *testing.T) {
	// an explicit empty mapping is valid configuration: no fields extracted
	rs, warn := Load(`{}`)
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	if len(rs.Fields()) != 0 {
		t.Fatalf("fields = %+v, want none", rs.Fields())
	}
}

func TestLoadBadRegexFallsBack(t *testing.T) {
	rs, warn := Load(`{"name": ["("]}`)
	if warn == "" {
		t.Fatal("expected a warning for an uncompilable pattern")
	}
	if rs != Default() {
		t.Fatal("uncompilable pattern should fall back to the default")
	}
}
