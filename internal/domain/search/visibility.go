package search

import "github.com/khoahotran/connecthub/internal/domain/post"

// Visible reports whether the viewer may see the post:
// own content always, public always, friends-only when an accepted
// friendship links the viewer and the author. Private posts are visible
// to nobody but their author.
//
// The posts composer pushes the same condition into SQL so it gates both
// the page query and the count query; this function is the reference the
// tests check that SQL against.
func Visible(p post.Post, viewerID int64, acceptedFriends func(a, b int64) bool) bool {
	if p.AuthorID == viewerID {
		return true
	}
	switch p.PrivacyLevel {
	case post.PrivacyPublic:
		return true
	case post.PrivacyFriends:
		return acceptedFriends(viewerID, p.AuthorID)
	default:
		return false
	}
}
