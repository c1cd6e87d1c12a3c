package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

const (
	trendingKey     = "search:trending"
	recentKeyPrefix = "search:recent:"
	recentKeep      = 20
	recentTTL       = 30 * 24 * time.Hour
)

// redisTrendingStore keeps the rolling counters the worker maintains from
// search.events. Best effort by design: a miss here never fails a search.
type redisTrendingStore struct {
	rdb *redis.Client
}

func NewRedisTrendingStore(rdb *redis.Client) search.TrendingStore {
	return &redisTrendingStore{rdb: rdb}
}

func (s *redisTrendingStore) RecordQuery(ctx context.Context, viewerID int64, query string) error {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	recentKey := fmt.Sprintf("%s%d", recentKeyPrefix, viewerID)

	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, trendingKey, 1, query)
	pipe.LPush(ctx, recentKey, query)
	pipe.LTrim(ctx, recentKey, 0, recentKeep-1)
	pipe.Expire(ctx, recentKey, recentTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewUnavailable("failed to record search query", err)
	}
	return nil
}

func (s *redisTrendingStore) TopQueries(ctx context.Context, n int) ([]search.TrendingQuery, error) {
	if n <= 0 {
		n = 10
	}

	entries, err := s.rdb.ZRevRangeWithScores(ctx, trendingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, apperror.NewUnavailable("failed to read trending queries", err)
	}

	top := make([]search.TrendingQuery, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		top = append(top, search.TrendingQuery{Query: member, Count: int64(e.Score)})
	}
	return top, nil
}

func (s *redisTrendingStore) RecentQueries(ctx context.Context, viewerID int64, n int) ([]string, error) {
	if n <= 0 {
		n = 10
	}

	recentKey := fmt.Sprintf("%s%d", recentKeyPrefix, viewerID)
	queries, err := s.rdb.LRange(ctx, recentKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, apperror.NewUnavailable("failed to read recent queries", err)
	}
	return queries, nil
}
