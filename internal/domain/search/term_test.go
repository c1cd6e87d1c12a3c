package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerm(t *testing.T) {
	term := NormalizeTerm("  john smith ")

	assert.Equal(t, "john smith", term.Raw)
	assert.Equal(t, []string{"john", "smith"}, term.Tokens)
	assert.True(t, term.MultiToken())
	assert.Equal(t, "john smith", term.Joined())
	assert.False(t, term.IsEmpty())
}

func TestNormalizeTerm_Empty(t *testing.T) {
	assert.True(t, NormalizeTerm("").IsEmpty())
	assert.True(t, NormalizeTerm("   \t ").IsEmpty())
}

func TestNormalizeTerm_SingleToken(t *testing.T) {
	term := NormalizeTerm("john")

	assert.False(t, term.MultiToken())
	assert.Equal(t, []string{"john"}, term.Tokens)
}

func TestNormalizeTerm_CollapsesInnerWhitespace(t *testing.T) {
	term := NormalizeTerm("john   smith")

	assert.Equal(t, "john smith", term.Joined())
}

// A query containing LIKE metacharacters must match them literally, not
// act as a wildcard.
func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in), "input %q", tt.in)
	}
}

func TestTermPattern(t *testing.T) {
	term := NormalizeTerm("50%_off")

	assert.Equal(t, `%50\%\_off%`, term.Pattern())
}

func TestTermJoinedPattern(t *testing.T) {
	term := NormalizeTerm(" jo%hn  smith ")

	assert.Equal(t, `%jo\%hn smith%`, term.JoinedPattern())
}
