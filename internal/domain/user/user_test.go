package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"user", "admin", "moderator"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}

	role, ok := ParseRole("superuser")
	assert.False(t, ok)
	assert.Equal(t, Role(""), role)
}

func TestStatusFilterOrDefault(t *testing.T) {
	assert.Equal(t, FilterActive, StatusFilterOrDefault("active"))
	assert.Equal(t, FilterSuspended, StatusFilterOrDefault("suspended"))
	assert.Equal(t, FilterAll, StatusFilterOrDefault("all"))

	// unknown values default silently, they never fail the request
	assert.Equal(t, FilterActive, StatusFilterOrDefault(""))
	assert.Equal(t, FilterActive, StatusFilterOrDefault("deleted"))
	assert.Equal(t, FilterActive, StatusFilterOrDefault("banana"))
}
