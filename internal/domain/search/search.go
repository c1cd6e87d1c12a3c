package search

import (
	"context"
	"time"

	"github.com/khoahotran/connecthub/internal/domain/friendship"
	"github.com/khoahotran/connecthub/internal/domain/post"
	"github.com/khoahotran/connecthub/internal/domain/user"
)

type Scope string

const (
	ScopeAll   Scope = "all"
	ScopeUsers Scope = "users"
	ScopePosts Scope = "posts"
)

func ScopeOrDefault(raw string) Scope {
	switch Scope(raw) {
	case ScopeAll, ScopeUsers, ScopePosts:
		return Scope(raw)
	}
	return ScopeAll
}

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortLikes     SortBy = "likes"
	SortComments  SortBy = "comments"
)

func SortByOrDefault(raw string) SortBy {
	switch SortBy(raw) {
	case SortRelevance, SortDate, SortLikes, SortComments:
		return SortBy(raw)
	}
	return SortRelevance
}

// UserQuery is a fully normalized people-search request: term already
// trimmed, filters already parsed, limit/offset already clamped.
type UserQuery struct {
	Term      Term
	Role      user.Role         // empty = any role
	Status    user.StatusFilter // "all" still excludes deleted
	ExcludeID int64             // viewer to leave out, 0 = nobody
	Limit     int
	Offset    int
}

// PostQuery is a normalized post-search request. At least one of Text,
// Location or Author was verified non-empty by the caller. ViewerID gates
// visibility and is always applied.
type PostQuery struct {
	Text     Term
	Location Term
	Author   string
	Type     post.PostType     // empty = any
	Privacy  post.PrivacyLevel // empty = any
	DateFrom *time.Time        // inclusive, date precision
	DateTo   *time.Time
	SortBy   SortBy
	ViewerID int64
	Limit    int
	Offset   int
}

// UserHit is a matched user plus the viewer-relative decoration filled in
// by the enricher after the page slice is fixed.
type UserHit struct {
	user.User
	FriendshipStatus *friendship.Status `json:"friendship_status"`
	PostCount        int64              `json:"post_count"`
	FriendCount      int64              `json:"friend_count"`
}

// PostHit is a matched post plus engagement decoration.
type PostHit struct {
	post.Post
	AuthorUsername string `json:"author_username"`
	LikeCount      int64  `json:"like_count"`
	CommentCount   int64  `json:"comment_count"`
	ViewerHasLiked bool   `json:"viewer_has_liked"`
}

// Repository runs the composed, filtered, ranked, paginated queries. Each
// call also returns the total matching the identical predicate, computed
// by a parallel count query. The two queries are not atomic; totals can
// drift under concurrent writes and callers accept that.
type Repository interface {
	SearchUsers(ctx context.Context, q UserQuery) ([]UserHit, int64, error)
	SearchPosts(ctx context.Context, q PostQuery) ([]PostHit, int64, error)
}

// Enricher decorates an already-ranked page in place. It must not reorder
// rows or touch pagination.
type Enricher interface {
	EnrichUsers(ctx context.Context, viewerID int64, hits []UserHit) error
	EnrichPosts(ctx context.Context, viewerID int64, hits []PostHit) error
}

type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// TrendingStore keeps the rolling search counters the worker maintains.
type TrendingStore interface {
	RecordQuery(ctx context.Context, viewerID int64, query string) error
	TopQueries(ctx context.Context, n int) ([]TrendingQuery, error)
	RecentQueries(ctx context.Context, viewerID int64, n int) ([]string, error)
}
