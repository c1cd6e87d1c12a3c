package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoahotran/connecthub/internal/domain/friendship"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

// postgresEnrichRepo decorates a fixed page of hits with viewer-relative
// context. Pure post-processing: it fills fields in place and never
// reorders or drops rows.
type postgresEnrichRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresEnrichRepo(db *pgxpool.Pool, logger logger.Logger) search.Enricher {
	return &postgresEnrichRepo{db: db, logger: logger}
}

func (r *postgresEnrichRepo) EnrichUsers(ctx context.Context, viewerID int64, hits []search.UserHit) error {
	if len(hits) == 0 {
		return nil
	}

	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}

	statuses, err := r.friendshipStatuses(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	postCounts, err := r.groupCounts(ctx,
		`SELECT author_id, COUNT(*) FROM posts WHERE author_id = ANY($1) GROUP BY author_id`, ids)
	if err != nil {
		return err
	}
	friendCounts, err := r.groupCounts(ctx,
		`SELECT uid, COUNT(*) FROM (
			SELECT requester_id AS uid FROM friendships WHERE status = 'accepted' AND requester_id = ANY($1)
			UNION ALL
			SELECT addressee_id FROM friendships WHERE status = 'accepted' AND addressee_id = ANY($1)
		) t GROUP BY uid`, ids)
	if err != nil {
		return err
	}

	for i := range hits {
		if st, ok := statuses[hits[i].ID]; ok {
			s := st
			hits[i].FriendshipStatus = &s
		}
		hits[i].PostCount = postCounts[hits[i].ID]
		hits[i].FriendCount = friendCounts[hits[i].ID]
	}
	return nil
}

func (r *postgresEnrichRepo) EnrichPosts(ctx context.Context, viewerID int64, hits []search.PostHit) error {
	if len(hits) == 0 {
		return nil
	}

	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}

	likeCounts, err := r.groupCounts(ctx,
		`SELECT post_id, COUNT(*) FROM likes WHERE post_id = ANY($1) GROUP BY post_id`, ids)
	if err != nil {
		return err
	}
	commentCounts, err := r.groupCounts(ctx,
		`SELECT post_id, COUNT(*) FROM comments WHERE post_id = ANY($1) GROUP BY post_id`, ids)
	if err != nil {
		return err
	}

	liked := make(map[int64]bool)
	rows, err := r.db.Query(ctx,
		`SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`, viewerID, ids)
	if err != nil {
		r.logger.Error("viewer likes lookup failed", err)
		return apperror.NewUnavailable("post enrichment failed", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return apperror.NewInternal("failed to scan liked post id", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return apperror.NewUnavailable("error iterating viewer likes", err)
	}

	for i := range hits {
		hits[i].LikeCount = likeCounts[hits[i].ID]
		hits[i].CommentCount = commentCounts[hits[i].ID]
		hits[i].ViewerHasLiked = liked[hits[i].ID]
	}
	return nil
}

// friendshipStatuses resolves the relationship between the viewer and each
// subject in one query, checking both orderings of the directed pair.
func (r *postgresEnrichRepo) friendshipStatuses(ctx context.Context, viewerID int64, ids []int64) (map[int64]friendship.Status, error) {
	rows, err := r.db.Query(ctx, `
		SELECT requester_id, addressee_id, status FROM friendships
		WHERE (requester_id = $1 AND addressee_id = ANY($2))
		   OR (addressee_id = $1 AND requester_id = ANY($2))`,
		viewerID, ids)
	if err != nil {
		r.logger.Error("friendship status lookup failed", err)
		return nil, apperror.NewUnavailable("user enrichment failed", err)
	}
	defer rows.Close()

	statuses := make(map[int64]friendship.Status)
	for rows.Next() {
		var requesterID, addresseeID int64
		var status friendship.Status
		if err := rows.Scan(&requesterID, &addresseeID, &status); err != nil {
			return nil, apperror.NewInternal("failed to scan friendship row", err)
		}
		other := requesterID
		if requesterID == viewerID {
			other = addresseeID
		}
		statuses[other] = status
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUnavailable("error iterating friendship rows", err)
	}
	return statuses, nil
}

func (r *postgresEnrichRepo) groupCounts(ctx context.Context, query string, ids []int64) (map[int64]int64, error) {
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error("aggregate count lookup failed", err)
		return nil, apperror.NewUnavailable("enrichment aggregate failed", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, apperror.NewInternal("failed to scan aggregate row", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUnavailable("error iterating aggregate rows", err)
	}
	return counts, nil
}
