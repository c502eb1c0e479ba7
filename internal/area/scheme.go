// Package area resolves BLS series identifiers to human-readable geography
// names. A series identifier's leading characters name the program family
// that owns it; each family embeds a geography code at a fixed position and
// resolves it against its own reference table:
//
//	EN  QCEW  area_titles.csv  5-char area_fips   e.g. "06037" → "Los Angeles County, California"
//	LA  LAUS  la_area.csv      2 letters + 13 digits  e.g. "ST0600000000000" → "California"
//	OE  OES   oes_areas.csv    7 digits           e.g. "0031080" → "Los Angeles-Long Beach-Anaheim, CA"
//
// Codes are only meaningful within their owning table; the key spaces are
// disjoint. Identifiers outside these three families carry no location
// semantics and resolve to no entry.
package area

import (
	"fmt"
	"regexp"
	"strings"
)

// Scheme identifies the program family that owns a series identifier's
// embedded geography code.
type Scheme int

const (
	SchemeQCEW Scheme = iota // Quarterly Census of Employment and Wages ("EN")
	SchemeLAUS               // Local Area Unemployment Statistics ("LA")
	SchemeOES                // Occupational Employment and Wage Statistics ("OE")
)

func (s Scheme) String() string {
	switch s {
	case SchemeQCEW:
		return "QCEW"
	case SchemeLAUS:
		return "LAUS"
	case SchemeOES:
		return "OES"
	default:
		return "unknown"
	}
}

// schemeDef couples a family's prefix test with its geography-code
// extraction pattern and the reference table it resolves against.
type schemeDef struct {
	scheme Scheme
	prefix string
	codeRe *regexp.Regexp
	table  func(Tables) CodeTable
}

var schemeDefs = []schemeDef{
	// QCEW area_fips: position 1 digit-or-U, position 2 digit-or-S, then 3 digits
	// (covers county FIPS, "US000" national, and "USCMS"-style aggregates).
	{SchemeQCEW, "EN", regexp.MustCompile(`^[A-Z]{3}([0-9U][0-9S][0-9]{3})`), func(t Tables) CodeTable { return t.QCEW }},
	{SchemeLAUS, "LA", regexp.MustCompile(`^[A-Z]{3}([A-Z]{2}[0-9]{13})`), func(t Tables) CodeTable { return t.LAUS }},
	{SchemeOES, "OE", regexp.MustCompile(`^[A-Z]*([0-9]{7})`), func(t Tables) CodeTable { return t.OES }},
}

// classify returns the owning scheme definition and the extracted geography
// code, or ok=false when no family claims the identifier.
func classify(id string) (schemeDef, string, bool) {
	for _, def := range schemeDefs {
		if !strings.HasPrefix(id, def.prefix) {
			continue
		}
		m := def.codeRe.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		return def, m[1], true
	}
	return schemeDef{}, "", false
}

// Classify returns the owning scheme and extracted geography code for a
// series identifier, or ok=false when no family claims it.
func Classify(id string) (Scheme, string, bool) {
	def, code, ok := classify(id)
	return def.scheme, code, ok
}

// UnknownGeographyError reports a geography code missing from its owning
// reference table.
type UnknownGeographyError struct {
	SeriesID string
	Scheme   Scheme
	AreaCode string
}

func (e *UnknownGeographyError) Error() string {
	return fmt.Sprintf("no %s entry for geography code %q (series %s)", e.Scheme, e.AreaCode, e.SeriesID)
}
