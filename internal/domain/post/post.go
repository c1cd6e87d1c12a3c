package post

import "time"

type PostType string

const (
	TypeText  PostType = "text"
	TypePhoto PostType = "photo"
	TypeVideo PostType = "video"
)

func ParseType(raw string) (PostType, bool) {
	switch PostType(raw) {
	case TypeText, TypePhoto, TypeVideo:
		return PostType(raw), true
	}
	return "", false
}

type PrivacyLevel string

const (
	PrivacyPublic  PrivacyLevel = "public"
	PrivacyFriends PrivacyLevel = "friends"
	PrivacyPrivate PrivacyLevel = "private"
)

// ParsePrivacyFilter accepts only the levels callers may filter on.
// Filtering on "private" makes no sense (a viewer only ever sees their own
// private posts anyway), so it is dropped like any other unknown value.
func ParsePrivacyFilter(raw string) (PrivacyLevel, bool) {
	switch PrivacyLevel(raw) {
	case PrivacyPublic, PrivacyFriends:
		return PrivacyLevel(raw), true
	}
	return "", false
}

type Post struct {
	ID           int64        `json:"id"`
	AuthorID     int64        `json:"author_id"`
	Caption      string       `json:"caption"`
	LocationName string       `json:"location_name"`
	PostType     PostType     `json:"post_type"`
	PrivacyLevel PrivacyLevel `json:"privacy_level"`
	CreatedAt    time.Time    `json:"created_at"`
}
