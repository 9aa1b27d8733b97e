package data

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics and drops everything but letters
// and digits, so "Hu Tao", "hutao" and "HU-TAO" compare equal.
func Normalize(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isSubsequence reports whether every rune of query appears in candidate
// in order.
func isSubsequence(query, candidate string) bool {
	rest := candidate
	for _, r := range query {
		i := strings.IndexRune(rest, r)
		if i < 0 {
			return false
		}
		rest = rest[i+len(string(r)):]
	}
	return true
}

// Match resolves query against names: an exact normalized match wins,
// otherwise a unique subsequence match. It returns the index into names.
func Match(names []string, query string) (int, error) {
	q := Normalize(query)
	if q == "" {
		return -1, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	var exact, fuzzy []int
	for i, n := range names {
		nn := Normalize(n)
		switch {
		case nn == q:
			exact = append(exact, i)
		case isSubsequence(q, nn):
			fuzzy = append(fuzzy, i)
		}
	}

	candidates := exact
	if len(candidates) == 0 {
		candidates = fuzzy
	}
	switch len(candidates) {
	case 0:
		return -1, fmt.Errorf("%w: %q", ErrNotFound, query)
	case 1:
		return candidates[0], nil
	default:
		matched := make([]string, len(candidates))
		for i, c := range candidates {
			matched[i] = names[c]
		}
		return -1, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, query, strings.Join(matched, ", "))
	}
}
