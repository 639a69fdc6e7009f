package validation

import (
	"math"
	"testing"
)

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite("value", 1.5); err != nil {
		t.Errorf("CheckFinite(1.5) error = %v, expected nil", err)
	}
	if err := CheckFinite("value", math.NaN()); err == nil {
		t.Errorf("CheckFinite(NaN) succeeded, expected error")
	}
	if err := CheckFinite("value", math.Inf(1)); err == nil {
		t.Errorf("CheckFinite(+Inf) succeeded, expected error")
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"Inside range", 0.5, false},
		{"At lower bound", 0, false},
		{"At upper bound", 1, false},
		{"Below range", -0.01, true},
		{"Above range", 1.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRange("lever", tt.value, 0, 1)
			if tt.wantErr && err == nil {
				t.Errorf("CheckRange(%v) succeeded, expected error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckRange(%v) error = %v, expected nil", tt.value, err)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "json"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v, expected nil", format, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Errorf("ValidateOutputFormat(xml) succeeded, expected error")
	}
}
