package search

import "strings"

// Relevance tiers: lower is better. The filter stage already guarantees a
// substring hit somewhere, so the last tier is the catch-all for rows that
// matched only on a weaker field. Comparisons are case-insensitive to stay
// consistent with the ILIKE substring stage.
//
// The SQL composers build an ORDER BY CASE expression from the same Term;
// these functions are the reference semantics and what the unit tests pin.

type UserFields struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// RankUser returns the relevance tier of a user candidate for the given
// term.
//
// Single-token query:
//  1. exact username match
//  2. exact first or last name match
//  3. substring hit anywhere else
//
// Multi-token query inserts the "first last" concatenation between 2 and
// the catch-all:
//  3. exact "first last" match
//  4. substring hit anywhere else
func RankUser(f UserFields, t Term) int {
	if strings.EqualFold(f.Username, t.Raw) {
		return 1
	}
	if strings.EqualFold(f.FirstName, t.Raw) || strings.EqualFold(f.LastName, t.Raw) {
		return 2
	}
	if t.MultiToken() {
		full := f.FirstName + " " + f.LastName
		if strings.EqualFold(full, t.Joined()) {
			return 3
		}
		return 4
	}
	return 3
}

// RankPost returns the relevance tier of a post candidate. Only the active
// axes count: with both a text and a location query, a row matching both
// outranks text-only which outranks location-only. With a single active
// axis the match tier is 1. The no-match tier is unreachable in practice
// because the filter stage already required a match, but it keeps the
// function total.
func RankPost(captionHit, locationHit, textActive, locationActive bool) int {
	switch {
	case textActive && locationActive:
		switch {
		case captionHit && locationHit:
			return 1
		case captionHit:
			return 2
		case locationHit:
			return 3
		default:
			return 4
		}
	case textActive:
		if captionHit {
			return 1
		}
		return 2
	case locationActive:
		if locationHit {
			return 1
		}
		return 2
	default:
		return 1
	}
}
