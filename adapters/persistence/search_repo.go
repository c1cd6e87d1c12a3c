package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
	"go.uber.org/zap"
)

func composerField(name string) zap.Field {
	return zap.String("composer", name)
}

type postgresSearchRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSearchRepo(db *pgxpool.Pool, logger logger.Logger) search.Repository {
	return &postgresSearchRepo{db: db, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// countWhere runs the parallel total query. It takes the same predicate
// value the data query was built from, so the two cannot diverge.
func (r *postgresSearchRepo) countWhere(ctx context.Context, composer, table string, joins []string, filter sq.Sqlizer) (int64, error) {
	builder := psql.Select("COUNT(*)").From(table)
	for _, j := range joins {
		builder = builder.Join(j)
	}

	query, args, err := builder.Where(filter).ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build count query", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("count query failed", err, composerField(composer))
		return 0, apperror.NewUnavailable(composer+" count failed", err)
	}
	return total, nil
}
