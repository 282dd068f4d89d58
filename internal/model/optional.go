package model

import "strconv"

// Float returns a pointer to v, for building optional numeric fields.
func Float(v float64) *float64 { return &v }

// FormatOptional renders an optional numeric field for CSV output.
// nil renders as the empty cell.
func FormatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ParseOptional parses a CSV cell into an optional numeric field. Empty or
// unparseable cells yield nil rather than zero, so absent measurements stay
// distinguishable from measured zeros end-to-end.
func ParseOptional(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
