package search

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/connecthub/adapters/event"
	"github.com/khoahotran/connecthub/internal/domain/post"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

type PostSearchUseCase struct {
	searchRepo  search.Repository
	enricher    search.Enricher
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewPostSearchUseCase(repo search.Repository, enricher search.Enricher, kClient *event.KafkaProducerClient, log logger.Logger) *PostSearchUseCase {
	return &PostSearchUseCase{
		searchRepo:  repo,
		enricher:    enricher,
		kafkaClient: kClient,
		logger:      log,
	}
}

type PostSearchInput struct {
	Text     string
	Location string
	Author   string
	PostType string
	Privacy  string
	DateFrom string
	DateTo   string
	SortBy   string
	Page     int
	Limit    int
	ViewerID int64
}

type PostSearchOutput struct {
	Posts      []search.PostHit
	Pagination Pagination
}

func (uc *PostSearchUseCase) Execute(ctx context.Context, input PostSearchInput) (*PostSearchOutput, error) {
	ctx, span := tracer.Start(ctx, "PostSearch")
	defer span.End()

	output, err := uc.run(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("post_hits", len(output.Posts)))

	uc.publish(input, len(output.Posts))
	return output, nil
}

func (uc *PostSearchUseCase) run(ctx context.Context, input PostSearchInput) (*PostSearchOutput, error) {
	text := search.NormalizeTerm(input.Text)
	location := search.NormalizeTerm(input.Location)
	author := strings.TrimSpace(input.Author)

	if text.IsEmpty() && location.IsEmpty() && author == "" {
		return nil, apperror.NewInvalidInput("at least one of text, location or author is required", nil)
	}

	page := clampPage(input.Page)
	limit := clampLimit(input.Limit)

	// Same silent policy as people search: a bad post_type, privacy, sort
	// or date filter is dropped, never rejected.
	postType, _ := post.ParseType(input.PostType)
	privacy, _ := post.ParsePrivacyFilter(input.Privacy)
	sortBy := search.SortByOrDefault(input.SortBy)

	q := search.PostQuery{
		Text:     text,
		Location: location,
		Author:   author,
		Type:     postType,
		Privacy:  privacy,
		DateFrom: parseDateOrNil(input.DateFrom),
		DateTo:   parseDateOrNil(input.DateTo),
		SortBy:   sortBy,
		ViewerID: input.ViewerID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	hits, total, err := uc.searchRepo.SearchPosts(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := uc.enricher.EnrichPosts(ctx, input.ViewerID, hits); err != nil {
		return nil, err
	}

	return &PostSearchOutput{
		Posts:      hits,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (uc *PostSearchUseCase) publish(input PostSearchInput, postHits int) {
	if uc.kafkaClient == nil || strings.TrimSpace(input.Text) == "" {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishSearchEvent(context.Background(), event.SearchEventPayload{
			Query:    input.Text,
			Scope:    string(search.ScopePosts),
			ViewerID: input.ViewerID,
			PostHits: postHits,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish search event", zap.Error(err))
		}
	}()
}

// parseDateOrNil reads a YYYY-MM-DD filter; an unparsable date is dropped
// like any other malformed optional filter.
func parseDateOrNil(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
