package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	for _, valid := range []string{"text", "photo", "video"} {
		pt, ok := ParseType(valid)
		assert.True(t, ok)
		assert.Equal(t, PostType(valid), pt)
	}

	_, ok := ParseType("reel")
	assert.False(t, ok)
}

func TestParsePrivacyFilter(t *testing.T) {
	for _, valid := range []string{"public", "friends"} {
		pl, ok := ParsePrivacyFilter(valid)
		assert.True(t, ok)
		assert.Equal(t, PrivacyLevel(valid), pl)
	}

	// private is not a filterable level
	_, ok := ParsePrivacyFilter("private")
	assert.False(t, ok)

	_, ok = ParsePrivacyFilter("secret")
	assert.False(t, ok)
}
