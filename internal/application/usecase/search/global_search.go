package search

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/connecthub/adapters/event"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

// GlobalSearchUseCase is the entry point: it dispatches to the user and
// post composers depending on the requested scope and assembles the
// envelope. scope=all is a preview fan-out, not real pagination.
type GlobalSearchUseCase struct {
	userSearch  *UserSearchUseCase
	postSearch  *PostSearchUseCase
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
	previewSize int
}

func NewGlobalSearchUseCase(userUC *UserSearchUseCase, postUC *PostSearchUseCase, kClient *event.KafkaProducerClient, log logger.Logger, previewSize int) *GlobalSearchUseCase {
	if previewSize <= 0 {
		previewSize = 5
	}
	return &GlobalSearchUseCase{
		userSearch:  userUC,
		postSearch:  postUC,
		kafkaClient: kClient,
		logger:      log,
		previewSize: previewSize,
	}
}

type GlobalSearchInput struct {
	Query    string
	Scope    string
	Page     int
	Limit    int
	ViewerID int64
}

type GlobalCounts struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
}

type GlobalSearchOutput struct {
	Scope search.Scope
	Users []search.UserHit
	Posts []search.PostHit

	// Pagination is set for single-entity scopes; Counts for scope=all,
	// where they reflect the returned previews, not store totals.
	Pagination *Pagination
	Counts     *GlobalCounts
}

func (uc *GlobalSearchUseCase) Execute(ctx context.Context, input GlobalSearchInput) (*GlobalSearchOutput, error) {
	ctx, span := tracer.Start(ctx, "GlobalSearch")
	defer span.End()

	term := search.NormalizeTerm(input.Query)
	if term.IsEmpty() {
		err := apperror.NewInvalidInput("search query is required", nil)
		span.RecordError(err)
		return nil, err
	}

	scope := search.ScopeOrDefault(input.Scope)
	span.SetAttributes(attribute.String("scope", string(scope)))

	output, err := uc.dispatch(ctx, input, scope)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publish(input, scope, len(output.Users), len(output.Posts))
	return output, nil
}

func (uc *GlobalSearchUseCase) dispatch(ctx context.Context, input GlobalSearchInput, scope search.Scope) (*GlobalSearchOutput, error) {
	switch scope {
	case search.ScopeUsers:
		out, err := uc.userSearch.run(ctx, UserSearchInput{
			Query:    input.Query,
			Page:     input.Page,
			Limit:    input.Limit,
			ViewerID: input.ViewerID,
		})
		if err != nil {
			return nil, err
		}
		return &GlobalSearchOutput{
			Scope:      scope,
			Users:      out.Users,
			Pagination: &out.Pagination,
		}, nil

	case search.ScopePosts:
		out, err := uc.postSearch.run(ctx, PostSearchInput{
			Text:     input.Query,
			Page:     input.Page,
			Limit:    input.Limit,
			ViewerID: input.ViewerID,
		})
		if err != nil {
			return nil, err
		}
		return &GlobalSearchOutput{
			Scope:      scope,
			Posts:      out.Posts,
			Pagination: &out.Pagination,
		}, nil

	default:
		return uc.fanOut(ctx, input)
	}
}

// fanOut runs both composers capped at min(previewSize, limit) from offset
// zero. The branches are independent queries, but the first store error
// still aborts the whole call.
func (uc *GlobalSearchUseCase) fanOut(ctx context.Context, input GlobalSearchInput) (*GlobalSearchOutput, error) {
	preview := uc.previewSize
	if limit := clampLimit(input.Limit); limit < preview {
		preview = limit
	}

	userOut, err := uc.userSearch.run(ctx, UserSearchInput{
		Query:    input.Query,
		Page:     1,
		Limit:    preview,
		ViewerID: input.ViewerID,
	})
	if err != nil {
		return nil, err
	}

	postOut, err := uc.postSearch.run(ctx, PostSearchInput{
		Text:     input.Query,
		Page:     1,
		Limit:    preview,
		ViewerID: input.ViewerID,
	})
	if err != nil {
		return nil, err
	}

	return &GlobalSearchOutput{
		Scope: search.ScopeAll,
		Users: userOut.Users,
		Posts: postOut.Posts,
		Counts: &GlobalCounts{
			Users: len(userOut.Users),
			Posts: len(postOut.Posts),
		},
	}, nil
}

func (uc *GlobalSearchUseCase) publish(input GlobalSearchInput, scope search.Scope, userHits, postHits int) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishSearchEvent(context.Background(), event.SearchEventPayload{
			Query:    input.Query,
			Scope:    string(scope),
			ViewerID: input.ViewerID,
			UserHits: userHits,
			PostHits: postHits,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish search event", zap.Error(err))
		}
	}()
}
