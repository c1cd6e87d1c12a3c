package search

import "strings"

// Term is a normalized query string ready to be embedded in a substring
// match. The raw input is trimmed and split on whitespace; patterns escape
// the LIKE metacharacters so a query containing '%' or '_' matches those
// characters literally instead of acting as a wildcard.
type Term struct {
	Raw    string
	Tokens []string
}

func NormalizeTerm(raw string) Term {
	trimmed := strings.TrimSpace(raw)
	return Term{
		Raw:    trimmed,
		Tokens: strings.Fields(trimmed),
	}
}

func (t Term) IsEmpty() bool {
	return t.Raw == ""
}

// MultiToken reports whether the query carries more than one word, which
// switches people ranking to the first+last name concatenation rules.
func (t Term) MultiToken() bool {
	return len(t.Tokens) > 1
}

// Joined is the tokens glued back with single spaces, used for the
// "first last" concatenation match.
func (t Term) Joined() string {
	return strings.Join(t.Tokens, " ")
}

// Pattern wraps the escaped raw term in wildcards for a contains match.
func (t Term) Pattern() string {
	return "%" + EscapeLike(t.Raw) + "%"
}

// JoinedPattern is Pattern over the space-normalized token join.
func (t Term) JoinedPattern() string {
	return "%" + EscapeLike(t.Joined()) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE/ILIKE metacharacters with the default
// backslash escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
