package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/caseflow/casetracker/constants"
)

// FieldRules binds one canonical field to its ordered candidate patterns.
type FieldRules struct {
	Field    string
	Patterns []*regexp.Regexp
}

// RuleSet is an ordered field -> patterns mapping. Pattern order within a
// field is significant: the first pattern that matches anywhere in the text
// wins, so loading preserves the declared order.
type RuleSet struct {
	fields []FieldRules
}

// Fields returns the rule set in field order.
func (r *RuleSet) Fields() []FieldRules { return r.fields }

// ruleFields is the canonical field order for extraction.
var ruleFields = []string{
	constants.FieldCaseNumber,
	constants.FieldName,
	constants.FieldAmount,
	constants.FieldAddress,
}

// defaultPatterns mirrors the built-in extraction rules. The amount list
// deliberately tries the loose $-prefixed pattern before the labeled
// "Amount:" form; which match wins depends on this order, so keep it.
var defaultPatterns = map[string][]string{
	constants.FieldCaseNumber: {
		`(?i)case(?:\s*no\.?| number)?\s*[:\-]?\s*([A-Z0-9\-]{4,})`,
		`(?i)\b(\d{2,4}\-?[A-Z]?\-?\d{3,6}\-?\d{0,4})\b`,
	},
	constants.FieldName: {
		`(?i)(?:claimant|owner|defendant|plaintiff)\s*[:\-]\s*([A-Z][A-Za-z'\-\. ]{1,80})`,
		`(?i)\b([A-Z][A-Za-z'\-\.]+(?:\s+[A-Z][A-Za-z'\-\.]+){0,3})\b`,
	},
	constants.FieldAmount: {
		`\$?\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`,
		`(?i)amount\s*[:\-]?\s*\$?\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`,
	},
	constants.FieldAddress: {
		`(?i)\b(\d{1,5}\s+[A-Za-z0-9'\.\- ]+,\s*[A-Za-z\.\- ]+,\s*[A-Z]{2}\s*\d{5}(?:-\d{4})?)\b`,
	},
}

var defaultRuleSet = mustBuild(defaultPatterns)

// Default returns the built-in rule set.
func Default() *RuleSet { return defaultRuleSet }

// Load parses a user-supplied rules configuration (JSON object mapping field
// names to pattern lists). Empty input yields the default. Any failure —
// malformed JSON, schema violation, or a pattern that does not compile —
// falls back to the built-in default and returns a non-empty warning;
// extraction proceeds regardless.
func Load(configText string) (*RuleSet, string) {
	if strings.TrimSpace(configText) == "" {
		return Default(), ""
	}
	if err := validateConfig([]byte(configText)); err != nil {
		return Default(), fmt.Sprintf("invalid rules config, using defaults: %v", err)
	}
	var m map[string][]string
	if err := json.Unmarshal([]byte(configText), &m); err != nil {
		return Default(), fmt.Sprintf("invalid rules config, using defaults: %v", err)
	}
	rs, err := build(m)
	if err != nil {
		return Default(), fmt.Sprintf("invalid rules config, using defaults: %v", err)
	}
	return rs, ""
}

// build compiles patterns in multiline mode so ^/$ anchor per line, matching
// how page text is scanned.
func build(m map[string][]string) (*RuleSet, error) {
	var fields []FieldRules
	for _, name := range ruleFields {
		raw, ok := m[name]
		if !ok {
			continue
		}
		fr := FieldRules{Field: name}
		for _, p := range raw {
			re, err := regexp.Compile("(?m)" + p)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			fr.Patterns = append(fr.Patterns, re)
		}
		fields = append(fields, fr)
	}
	return &RuleSet{fields: fields}, nil
}

func mustBuild(m map[string][]string) *RuleSet {
	rs, err := build(m)
	if err != nil {
		panic(err)
	}
	return rs
}

// configSchema constrains the rules document: known fields only, each an
// ordered non-empty list of pattern strings.
func configSchema() map[string]any {
	patternList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
	props := map[string]any{}
	for _, f := range ruleFields {
		props[f] = patternList
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// validateConfig validates "data" against the rules config schema.
func validateConfig(data []byte) error {
	b, err := json.Marshal(configSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
