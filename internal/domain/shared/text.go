package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims, collapses inner whitespace and applies NFC so that
// visually identical names are stored identically.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// NameKey returns the case-folded form of a name used for per-tenant
// uniqueness checks ("Main Shelf" and "main shelf" collide).
func NameKey(name string) string {
	// Casers are stateful, so one is built per call.
	return cases.Fold().String(NormalizeName(name))
}
