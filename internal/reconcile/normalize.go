// Package reconcile implements the record reconciliation core: identifier
// normalization, per-mission schema mapping, disposition reconciliation,
// cross-mission deduplication, and prediction matching.
package reconcile

import "strings"

// namePrefixes lists recognized mission prefixes in fixed priority order.
// Exactly one prefix is stripped per name, the first match wins: a bare "K"
// takes a KOI-prefixed name's leading letter only, which keeps K-catalog and
// KOI-catalog keys from colliding.
var namePrefixes = []string{
	"K",
	"KOI-",
	"KOI ",
	"TOI-",
	"TOI ",
	"EPIC ",
	"EPIC-",
}

// NormalizeKey canonicalizes a mission-specific object name into the
// mission-agnostic comparison key:
//  1. Trim whitespace; empty input returns "" (which never matches anything).
//  2. Strip one recognized mission prefix, case-insensitively.
//  3. Strip leading zeros from a purely numeric head before the first decimal
//     point ("K00711.03" and "711.03" both yield "711.03").
//
// The result is a pure function of the input name, so re-running the
// pipeline yields identical keys. A non-numeric head after prefix stripping
// is passed through unchanged; no cross-ID catalog is consulted.
func NormalizeKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	upper := strings.ToUpper(name)
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	if head, tail, found := strings.Cut(name, "."); found {
		if isDigits(head) {
			head = strings.TrimLeft(head, "0")
			if head == "" {
				head = "0"
			}
		}
		name = head + "." + tail
	}

	return strings.TrimSpace(name)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
