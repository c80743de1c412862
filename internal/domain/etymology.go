package domain

import "strings"

// etymologyCodes maps the abbreviations used in the source corpus to the
// labels stored in etymology_type.
var etymologyCodes = map[string]string{
	"D":     "Derived",
	"Basic": "Basic",
	"VU":    "Verbum Unicum",
	"S":     "See",
	"F":     "Foreign Loan Word",
	"E":     "Error",
	"PU":    "Problematical/Uncertain",
	"C":     "Chinese",
	"VUD":   "Verbum Unicum, Derived",
	"DF":    "Derived, Foreign",
	"PUD":   "Problematical, Derived",
	"VUF":   "Verbum Unicum, Foreign",
	"PUF":   "Problematical, Foreign",
	"SF":    "See, Foreign",
	"DC":    "Derived, Chinese",
}

// ExpandEtymology converts a corpus etymology code into its display label.
// Codes carrying "?" mark an uncertain attribution and expand with a
// trailing "?". Unknown codes pass through unchanged.
func ExpandEtymology(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if label, ok := etymologyCodes[code]; ok {
		return label
	}
	if label, ok := etymologyCodes[strings.ReplaceAll(code, "?", "")]; ok {
		return label + "?"
	}
	return code
}
