package extract

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56", 1234.56, true},
		{"$ 5,000", 5000, true},
		{"1000", 1000, true},
		{"  $12.50  ", 12.5, true},
		{"-42.10", -42.10, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"$", 0, false},
		{"12.3.4", 0, false},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		if tt.ok {
			if got == nil || *got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		} else if got != nil {
			t.Errorf("ParseAmount(%q) = %v, want absent", tt.in, *got)
		}
	}
}

func TestParseAmountIdempotent(t *testing.T) {
	first := ParseAmount("$1,234.50")
	if first == nil {
		t.Fatal("first parse returned absent")
	}
	second := ParseAmount("1234.5")
	if second == nil || *second != *first {
		t.Errorf("second parse = %v, want %v", second, *first)
	}
}

func TestCoerceAmount(t *testing.T) {
	if got := CoerceAmount(1000); got == nil || *got != 1000 {
		t.Errorf("CoerceAmount(1000) = %v, want 1000", got)
	}
	if got := CoerceAmount(12.5); got == nil || *got != 12.5 {
		t.Errorf("CoerceAmount(12.5) = %v, want 12.5", got)
	}
	v := 7.25
	if got := CoerceAmount(&v); got == nil || *got != 7.25 {
		t.Errorf("CoerceAmount(*float64) = %v, want 7.25", got)
	}
	if got := CoerceAmount((*float64)(nil)); got != nil {
		t.Errorf("CoerceAmount(nil *float64) = %v, want absent", *got)
	}
	if got := CoerceAmount("$2,000"); got == nil || *got != 2000 {
		t.Errorf("CoerceAmount(string) = %v, want 2000", got)
	}
	if got := CoerceAmount(nil); got != nil {
		t.Errorf("CoerceAmount(nil) = %v, want absent", *got)
	}
	if got := CoerceAmount(struct{}{}); got != nil {
		t.Errorf("CoerceAmount(struct{}) = %v, want absent", *got)
	}
}
