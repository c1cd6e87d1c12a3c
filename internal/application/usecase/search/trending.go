package search

import (
	"context"

	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/logger"
)

type TrendingUseCase struct {
	store  search.TrendingStore
	logger logger.Logger
	size   int
}

func NewTrendingUseCase(store search.TrendingStore, log logger.Logger, size int) *TrendingUseCase {
	if size <= 0 {
		size = 10
	}
	return &TrendingUseCase{store: store, logger: log, size: size}
}

type TrendingOutput struct {
	Trending []search.TrendingQuery
	Recent   []string
}

func (uc *TrendingUseCase) Execute(ctx context.Context, viewerID int64) (*TrendingOutput, error) {
	ctx, span := tracer.Start(ctx, "TrendingSearches")
	defer span.End()

	trending, err := uc.store.TopQueries(ctx, uc.size)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	recent, err := uc.store.RecentQueries(ctx, viewerID, uc.size)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &TrendingOutput{Trending: trending, Recent: recent}, nil
}
