package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/khoahotran/connecthub/internal/domain/post"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
)

const postComposer = "posts"

const postAuthorJoin = "users a ON a.id = p.author_id"

// visibilityPredicate is the bulk form of search.Visible: own post, public
// post, or friends-level post from an accepted friend (both row orderings
// of the friendship pair). It is ANDed into every posts query, data and
// count alike.
func visibilityPredicate(viewerID int64) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"p.author_id": viewerID},
		sq.Eq{"p.privacy_level": post.PrivacyPublic},
		sq.And{
			sq.Eq{"p.privacy_level": post.PrivacyFriends},
			sq.Expr(`EXISTS (
				SELECT 1 FROM friendships f
				WHERE f.status = 'accepted'
				  AND ((f.requester_id = p.author_id AND f.addressee_id = ?)
				    OR (f.requester_id = ? AND f.addressee_id = p.author_id))
			)`, viewerID, viewerID),
		},
	}
}

// buildPostFilter composes the full posts predicate once; page and count
// queries share the returned value.
func buildPostFilter(q search.PostQuery) sq.And {
	filter := sq.And{visibilityPredicate(q.ViewerID)}

	match := sq.Or{}
	if !q.Text.IsEmpty() {
		match = append(match, sq.ILike{"p.caption": q.Text.Pattern()})
	}
	if !q.Location.IsEmpty() {
		match = append(match, sq.ILike{"p.location_name": q.Location.Pattern()})
	}
	if q.Author != "" {
		match = append(match, sq.Expr("a.username ILIKE ?", "%"+search.EscapeLike(q.Author)+"%"))
	}
	filter = append(filter, match)

	if q.Type != "" {
		filter = append(filter, sq.Eq{"p.post_type": q.Type})
	}
	if q.Privacy != "" {
		filter = append(filter, sq.Eq{"p.privacy_level": q.Privacy})
	}
	if q.DateFrom != nil {
		filter = append(filter, sq.Expr("p.created_at::date >= ?::date", *q.DateFrom))
	}
	if q.DateTo != nil {
		filter = append(filter, sq.Expr("p.created_at::date <= ?::date", *q.DateTo))
	}

	return filter
}

// postRankExpr mirrors search.RankPost for the active query axes. Nil when
// neither text nor location is active (author-only search), in which case
// recency is the only ordering.
func postRankExpr(q search.PostQuery) sq.Sqlizer {
	textActive := !q.Text.IsEmpty()
	locActive := !q.Location.IsEmpty()

	switch {
	case textActive && locActive:
		return sq.Expr(`CASE
			WHEN p.caption ILIKE ? AND p.location_name ILIKE ? THEN 1
			WHEN p.caption ILIKE ? THEN 2
			WHEN p.location_name ILIKE ? THEN 3
			ELSE 4 END`,
			q.Text.Pattern(), q.Location.Pattern(), q.Text.Pattern(), q.Location.Pattern())
	case textActive:
		return sq.Expr("CASE WHEN p.caption ILIKE ? THEN 1 ELSE 2 END", q.Text.Pattern())
	case locActive:
		return sq.Expr("CASE WHEN p.location_name ILIKE ? THEN 1 ELSE 2 END", q.Location.Pattern())
	default:
		return nil
	}
}

func (r *postgresSearchRepo) SearchPosts(ctx context.Context, q search.PostQuery) ([]search.PostHit, int64, error) {
	filter := buildPostFilter(q)

	builder := psql.Select(
		"p.id", "p.author_id", "a.username", "p.caption", "p.location_name",
		"p.post_type", "p.privacy_level", "p.created_at",
	).
		From("posts p").
		Join(postAuthorJoin).
		Where(filter)

	// An explicit sort field replaces relevance tiering entirely; recency
	// stays on as the final tiebreaker either way.
	switch q.SortBy {
	case search.SortDate:
		builder = builder.OrderBy("p.created_at DESC")
	case search.SortLikes:
		builder = builder.OrderBy(
			"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) DESC",
			"p.created_at DESC",
		)
	case search.SortComments:
		builder = builder.OrderBy(
			"(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) DESC",
			"p.created_at DESC",
		)
	default:
		if rank := postRankExpr(q); rank != nil {
			builder = builder.OrderByClause(rank)
		}
		builder = builder.OrderBy("p.created_at DESC")
	}

	builder = builder.Limit(uint64(q.Limit)).Offset(uint64(q.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build posts search query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("posts search query failed", err, composerField(postComposer))
		return nil, 0, apperror.NewUnavailable("posts search failed", err)
	}
	defer rows.Close()

	hits := make([]search.PostHit, 0)
	for rows.Next() {
		var h search.PostHit
		if err := rows.Scan(
			&h.ID, &h.AuthorID, &h.AuthorUsername, &h.Caption, &h.LocationName,
			&h.PostType, &h.PrivacyLevel, &h.CreatedAt,
		); err != nil {
			return nil, 0, apperror.NewInternal("failed to scan post row", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewUnavailable("error iterating post rows", err)
	}

	total, err := r.countWhere(ctx, postComposer, "posts p", []string{postAuthorJoin}, filter)
	if err != nil {
		return nil, 0, err
	}

	return hits, total, nil
}
