package persistence

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/internal/domain/user"
	"github.com/khoahotran/connecthub/pkg/apperror"
)

const userComposer = "users"

// buildUserFilter is the single place the people-search predicate is
// composed. Both the page query and the count query receive the value it
// returns.
func buildUserFilter(q search.UserQuery) sq.And {
	filter := sq.And{}

	if q.Status == user.FilterAll {
		filter = append(filter, sq.NotEq{"account_status": user.StatusDeleted})
	} else {
		filter = append(filter, sq.Eq{"account_status": string(q.Status)})
	}

	if q.Role != "" {
		filter = append(filter, sq.Eq{"role": q.Role})
	}

	if q.ExcludeID != 0 {
		filter = append(filter, sq.NotEq{"id": q.ExcludeID})
	}

	pattern := q.Term.Pattern()
	match := sq.Or{
		sq.ILike{"username": pattern},
		sq.ILike{"first_name": pattern},
		sq.ILike{"last_name": pattern},
		sq.ILike{"email": pattern},
	}
	if q.Term.MultiToken() {
		match = append(match, sq.Expr("(first_name || ' ' || last_name) ILIKE ?", q.Term.JoinedPattern()))
	}
	filter = append(filter, match)

	return filter
}

// userRankExpr mirrors search.RankUser as an ORDER BY CASE expression so
// the tiering runs inside the store where pagination happens.
func userRankExpr(t search.Term) sq.Sqlizer {
	if t.MultiToken() {
		return sq.Expr(`CASE
			WHEN lower(username) = lower(?) THEN 1
			WHEN lower(first_name) = lower(?) OR lower(last_name) = lower(?) THEN 2
			WHEN lower(first_name || ' ' || last_name) = lower(?) THEN 3
			ELSE 4 END`,
			t.Raw, t.Raw, t.Raw, t.Joined())
	}
	return sq.Expr(`CASE
		WHEN lower(username) = lower(?) THEN 1
		WHEN lower(first_name) = lower(?) OR lower(last_name) = lower(?) THEN 2
		ELSE 3 END`,
		t.Raw, t.Raw, t.Raw)
}

func (r *postgresSearchRepo) SearchUsers(ctx context.Context, q search.UserQuery) ([]search.UserHit, int64, error) {
	filter := buildUserFilter(q)

	builder := psql.Select(
		"id", "username", "email", "first_name", "last_name",
		"bio", "avatar_url", "role", "account_status", "created_at",
	).
		From("users").
		Where(filter).
		OrderByClause(userRankExpr(q.Term)).
		OrderBy("username ASC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build users search query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("users search query failed", err, composerField(userComposer))
		return nil, 0, apperror.NewUnavailable("users search failed", err)
	}
	defer rows.Close()

	hits := make([]search.UserHit, 0)
	for rows.Next() {
		var h search.UserHit
		var avatarURL sql.NullString
		if err := rows.Scan(
			&h.ID, &h.Username, &h.Email, &h.FirstName, &h.LastName,
			&h.Bio, &avatarURL, &h.Role, &h.AccountStatus, &h.CreatedAt,
		); err != nil {
			return nil, 0, apperror.NewInternal("failed to scan user row", err)
		}
		if avatarURL.Valid {
			h.AvatarURL = &avatarURL.String
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewUnavailable("error iterating user rows", err)
	}

	total, err := r.countWhere(ctx, userComposer, "users", nil, filter)
	if err != nil {
		return nil, 0, err
	}

	return hits, total, nil
}
