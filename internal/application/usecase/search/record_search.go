package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/connecthub/adapters/event"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/logger"
)

// ProcessSearchEventUseCase is the worker side of search.events: fold one
// consumed event into the trending counters.
type ProcessSearchEventUseCase struct {
	store  search.TrendingStore
	logger logger.Logger
}

func NewProcessSearchEventUseCase(store search.TrendingStore, log logger.Logger) *ProcessSearchEventUseCase {
	return &ProcessSearchEventUseCase{store: store, logger: log}
}

func (uc *ProcessSearchEventUseCase) Execute(ctx context.Context, payload event.SearchEventPayload) error {
	if err := uc.store.RecordQuery(ctx, payload.ViewerID, payload.Query); err != nil {
		uc.logger.Error("Failed to record search query", err,
			zap.String("event_id", payload.EventID.String()))
		return err
	}
	return nil
}
