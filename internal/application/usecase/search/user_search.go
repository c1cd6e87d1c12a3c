package search

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/connecthub/adapters/event"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/internal/domain/user"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

var tracer = otel.Tracer("search_usecase")

type UserSearchUseCase struct {
	searchRepo  search.Repository
	enricher    search.Enricher
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewUserSearchUseCase(repo search.Repository, enricher search.Enricher, kClient *event.KafkaProducerClient, log logger.Logger) *UserSearchUseCase {
	return &UserSearchUseCase{
		searchRepo:  repo,
		enricher:    enricher,
		kafkaClient: kClient,
		logger:      log,
	}
}

type UserSearchInput struct {
	Query    string
	Role     string
	Status   string
	Page     int
	Limit    int
	ViewerID int64
}

type UserSearchOutput struct {
	Users      []search.UserHit
	Pagination Pagination
}

func (uc *UserSearchUseCase) Execute(ctx context.Context, input UserSearchInput) (*UserSearchOutput, error) {
	ctx, span := tracer.Start(ctx, "UserSearch")
	defer span.End()

	output, err := uc.run(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("user_hits", len(output.Users)))

	uc.publish(input, len(output.Users))
	return output, nil
}

// run is the composer pipeline without event publishing, shared with the
// orchestrator's fan-out so previews do not double-count in trending.
func (uc *UserSearchUseCase) run(ctx context.Context, input UserSearchInput) (*UserSearchOutput, error) {
	term := search.NormalizeTerm(input.Query)
	if term.IsEmpty() {
		return nil, apperror.NewInvalidInput("search term is required", nil)
	}

	page := clampPage(input.Page)
	limit := clampLimit(input.Limit)

	// Optional enum filters never fail the request; bad values are dropped
	// or defaulted on purpose.
	role, _ := user.ParseRole(input.Role)
	status := user.StatusFilterOrDefault(input.Status)

	q := search.UserQuery{
		Term:      term,
		Role:      role,
		Status:    status,
		ExcludeID: input.ViewerID,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	hits, total, err := uc.searchRepo.SearchUsers(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := uc.enricher.EnrichUsers(ctx, input.ViewerID, hits); err != nil {
		return nil, err
	}

	return &UserSearchOutput{
		Users:      hits,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (uc *UserSearchUseCase) publish(input UserSearchInput, userHits int) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishSearchEvent(context.Background(), event.SearchEventPayload{
			Query:    input.Query,
			Scope:    string(search.ScopeUsers),
			ViewerID: input.ViewerID,
			UserHits: userHits,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish search event", zap.Error(err))
		}
	}()
}
