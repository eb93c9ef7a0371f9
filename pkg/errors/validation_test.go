package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateComponentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "heatmap", false},
		{"valid kebab", "dependency-wheel", false},
		{"valid digits", "chart2", false},

		{"empty", "", true},
		{"uppercase", "Sankey", true},
		{"leading dash", "-bar", true},
		{"spaces", "bar chart", true},
		{"path traversal", "../etc", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"default", 400, 300, false},
		{"fractional", 0.5, 0.5, false},
		{"zero width", 0, 300, true},
		{"negative height", 400, -1, true},
		{"too large", 50000, 300, true},
		{"NaN width", math.NaN(), 300, true},
		{"NaN height", 400, math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateSize returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	if err := ValidateDimension("width", 800); err != nil {
		t.Errorf("ValidateDimension(800) = %v", err)
	}
	for _, v := range []float64{0, -1, math.NaN(), MaxDimension + 1} {
		if err := ValidateDimension("width", v); !Is(err, ErrCodeInvalidSize) {
			t.Errorf("ValidateDimension(%v) = %v, want %s", v, err, ErrCodeInvalidSize)
		}
	}
}

func TestIsColor(t *testing.T) {
	valid := []string{"#fff", "#ffff", "#1d4ed8", "#1D4ED880", "rgb(1,2,3)", "rgba(0, 0, 0, 0.5)", "rgb(10%, 20%, 30%)"}
	for _, c := range valid {
		if !IsColor(c) {
			t.Errorf("IsColor(%q) = false", c)
		}
	}
	invalid := []string{"", "red", "#ff", "#gggggg", "#fffff", `#fff" onload="x`, "rgb(1,2,3)\"", "rgb(url(x))", "#fff<"}
	for _, c := range invalid {
		if IsColor(c) {
			t.Errorf("IsColor(%q) = true", c)
		}
	}
	if err := ValidateColors([]string{"#000", "<x>"}); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateColors = %v, want %s", err, ErrCodeInvalidInput)
	}
	if err := ValidateColors(nil); err != nil {
		t.Errorf("ValidateColors(nil) = %v", err)
	}
}

func TestValidateSearchQuery(t *testing.T) {
	if err := ValidateSearchQuery(""); err != nil {
		t.Errorf("empty query should be valid: %v", err)
	}
	if err := ValidateSearchQuery("chart"); err != nil {
		t.Errorf("plain query should be valid: %v", err)
	}
	if err := ValidateSearchQuery("a\x00b"); err == nil {
		t.Error("control characters should be rejected")
	}
	if err := ValidateSearchQuery(strings.Repeat("q", 201)); err == nil {
		t.Error("long query should be rejected")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDataset,
		ErrCodeInvalidKind,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidSize,
		ErrCodeDanglingLink,
		ErrCodeNotFound,
		ErrCodeComponentNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
