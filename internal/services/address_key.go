package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var houseNumberPattern = regexp.MustCompile(`\d{1,6}`)

// NormalizeAddressKey derives the grouping key "<street> <number>" from a
// free-text address, or returns "" when no street/number pair can be found.
//
// The key is lossy on purpose: unit and complement text after the number is
// dropped so that every package for one building collapses to the same key.
//
//	NormalizeAddressKey("Rua das Flores, 123, apto 4") == "rua das flores 123"
//	NormalizeAddressKey("rua das flores 123 ap 4")     == "rua das flores 123"
//	NormalizeAddressKey("sem número")                  == ""
func NormalizeAddressKey(address string) string {
	s := stripDiacritics(strings.ToLower(address))

	loc := houseNumberPattern.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	number := s[loc[0]:loc[1]]

	// Addresses written number-first ("123 Main St, City") fall back to the
	// text before the first comma.
	street := letterWords(s[:loc[0]])
	if street == "" {
		head := s
		if i := strings.IndexByte(s, ','); i >= 0 {
			head = s[:i]
		}
		street = letterWords(head)
	}

	if street == "" || number == "" {
		return ""
	}
	return street + " " + number
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// letterWords drops everything that is not a letter or whitespace and
// collapses the remaining whitespace runs.
func letterWords(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}
