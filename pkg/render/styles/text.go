package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a coordinate with at most two decimals and no trailing zeros.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FontWeight returns the SVG font-weight for a bold flag.
func FontWeight(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}
