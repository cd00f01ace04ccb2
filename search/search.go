// Package search implements the query-matching policy used to highlight
// and bulk-redact extracted lines.
//
// Matching is case-insensitive using Unicode case folding, so queries
// behave sensibly for non-ASCII text (for example "straße" matches
// "STRASSE"). Two policies are provided:
//
//   - [Substring] - the folded query appears anywhere in the folded text
//   - [Token] - every whitespace-separated query token appears as a whole
//     token in the text
//
// Substring is the default and matches the behavior of incremental
// search-as-you-type.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/blackout/model"
)

// Policy selects how a query is matched against line text.
type Policy int

const (
	// Substring matches when the query occurs anywhere in the text.
	Substring Policy = iota
	// Token matches when every query token occurs as a whole token.
	Token
)

// CleanQuery trims a raw query and collapses internal whitespace runs to
// single spaces. The cleaned form is what the store exposes and what the
// matcher consumes.
func CleanQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// Matcher matches line text against a search query under a fixed policy.
// The zero value uses the Substring policy.
type Matcher struct {
	policy Policy
}

// NewMatcher creates a matcher with the given policy.
func NewMatcher(policy Policy) *Matcher {
	return &Matcher{policy: policy}
}

// Match reports whether text matches query. An empty or whitespace-only
// query matches nothing.
func (m *Matcher) Match(text, query string) bool {
	query = CleanQuery(query)
	if query == "" {
		return false
	}

	// cases.Caser carries internal state, so fold with a fresh caser
	// per call rather than sharing one across goroutines.
	folder := cases.Fold()
	foldedText := folder.String(text)
	foldedQuery := folder.String(query)

	switch m.policy {
	case Token:
		return matchTokens(foldedText, foldedQuery)
	default:
		return strings.Contains(foldedText, foldedQuery)
	}
}

// MatchLines returns the lines whose text matches query, preserving the
// input order.
func (m *Matcher) MatchLines(lines []model.Line, query string) []model.Line {
	var matched []model.Line
	for _, ln := range lines {
		if m.Match(ln.Text, query) {
			matched = append(matched, ln)
		}
	}
	return matched
}

// matchTokens reports whether every token of query occurs as a whole
// token in text. Both inputs are already case-folded.
func matchTokens(text, query string) bool {
	textTokens := strings.Fields(text)
	for _, qt := range strings.Fields(query) {
		found := false
		for _, tt := range textTokens {
			if tt == qt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
