package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/connecthub/internal/domain/post"
)

func TestVisible(t *testing.T) {
	friends := func(a, b int64) bool {
		return (a == 1 && b == 2) || (a == 2 && b == 1)
	}
	noFriends := func(a, b int64) bool { return false }

	tests := []struct {
		name    string
		p       post.Post
		viewer  int64
		friends func(a, b int64) bool
		want    bool
	}{
		{"author sees own private post", post.Post{AuthorID: 1, PrivacyLevel: post.PrivacyPrivate}, 1, noFriends, true},
		{"author sees own friends post", post.Post{AuthorID: 1, PrivacyLevel: post.PrivacyFriends}, 1, noFriends, true},
		{"public visible to anyone", post.Post{AuthorID: 9, PrivacyLevel: post.PrivacyPublic}, 1, noFriends, true},
		{"friends post visible to accepted friend", post.Post{AuthorID: 2, PrivacyLevel: post.PrivacyFriends}, 1, friends, true},
		{"friends post hidden from stranger", post.Post{AuthorID: 3, PrivacyLevel: post.PrivacyFriends}, 1, friends, false},
		{"private hidden from friend", post.Post{AuthorID: 2, PrivacyLevel: post.PrivacyPrivate}, 1, friends, false},
		{"private hidden from stranger", post.Post{AuthorID: 3, PrivacyLevel: post.PrivacyPrivate}, 1, noFriends, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.p, tt.viewer, tt.friends))
		})
	}
}
