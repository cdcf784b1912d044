// Package normalize derives canonical comparison keys from free-form
// phone numbers, postal addresses, and website URLs. All functions are
// total: empty input yields empty output, never an error.
package normalize

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// streetAbbrevs expands the street-type abbreviations that show up in
// directory addresses. Word-boundary matching only, so "Stone St" keeps
// its "Stone".
var streetAbbrevs = []struct {
	pattern *regexp.Regexp
	full    string
}{
	{regexp.MustCompile(`\bst\b`), "street"},
	{regexp.MustCompile(`\brd\b`), "road"},
	{regexp.MustCompile(`\bave\b`), "avenue"},
	{regexp.MustCompile(`\bblvd\b`), "boulevard"},
	{regexp.MustCompile(`\bdr\b`), "drive"},
}

var multiSpace = regexp.MustCompile(`\s+`)

// Phone strips everything but digits and drops a leading US country code
// from 11-digit numbers. The result may be any length; callers treat only
// exactly 10 digits as a usable dedup key.
func Phone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigit.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}

// Address lower-cases, trims, expands street-type abbreviations, and
// collapses runs of whitespace to single spaces.
func Address(address string) string {
	if address == "" {
		return ""
	}
	addr := strings.ToLower(strings.TrimSpace(address))
	for _, ab := range streetAbbrevs {
		addr = ab.pattern.ReplaceAllString(addr, ab.full)
	}
	return multiSpace.ReplaceAllString(addr, " ")
}

// Domain extracts the host portion of a website URL: scheme and "www."
// prefix stripped, lower-cased, truncated at the first slash.
func Domain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	domain := strings.ToLower(rawURL)
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}
