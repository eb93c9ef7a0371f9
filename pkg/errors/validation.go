package errors

import (
	"math"
	"regexp"
	"unicode"
)

// componentIDRegex matches catalog ids such as "sankey-chart".
var componentIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateComponentID validates a catalog component id.
// Ids are lowercase kebab-case, at most 64 characters.
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "component id too long (max 64 characters)")
	}
	if !componentIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid component id: %q", id)
	}
	return nil
}

// MaxDimension caps each side of a canvas.
const MaxDimension = 20000

// colorRegex matches hex colors (#rgb, #rgba, #rrggbb, #rrggbbaa) and
// rgb()/rgba() functions with numeric arguments.
var colorRegex = regexp.MustCompile(`^(#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\([0-9.,% ]+\))$`)

// IsColor reports whether s is a literal color accepted in ramps and
// palettes.
func IsColor(s string) bool {
	return colorRegex.MatchString(s)
}

// ValidateColors checks every entry of a palette.
func ValidateColors(colors []string) error {
	for i, c := range colors {
		if !IsColor(c) {
			return New(ErrCodeInvalidInput, "color %d is not a hex or rgb() color: %q", i, c)
		}
	}
	return nil
}

// ValidateDimension checks one side of a canvas.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return New(ErrCodeInvalidSize, "%s must be positive, got %g", name, v)
	}
	if v > MaxDimension {
		return New(ErrCodeInvalidSize, "%s too large (max %d)", name, MaxDimension)
	}
	return nil
}

// ValidateSize checks that a canvas size is strictly positive and bounded.
func ValidateSize(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %gx%g", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidSize, "size too large (max %d per side)", MaxDimension)
	}
	return nil
}

// ValidateSearchQuery validates a free-text catalog query.
// Empty queries are allowed and match everything.
func ValidateSearchQuery(q string) error {
	if len(q) > 200 {
		return New(ErrCodeInvalidInput, "query too long (max 200 characters)")
	}
	for _, r := range q {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "query contains invalid control characters")
		}
	}
	return nil
}
