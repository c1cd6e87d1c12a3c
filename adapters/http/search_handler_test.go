package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchUC "github.com/khoahotran/connecthub/internal/application/usecase/search"
	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/internal/domain/user"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

type stubSearchRepo struct {
	userHits  []search.UserHit
	userTotal int64
	userErr   error
	postHits  []search.PostHit
	postTotal int64
	postErr   error
}

func (s *stubSearchRepo) SearchUsers(_ context.Context, _ search.UserQuery) ([]search.UserHit, int64, error) {
	return s.userHits, s.userTotal, s.userErr
}

func (s *stubSearchRepo) SearchPosts(_ context.Context, _ search.PostQuery) ([]search.PostHit, int64, error) {
	return s.postHits, s.postTotal, s.postErr
}

type stubEnricher struct{}

func (stubEnricher) EnrichUsers(_ context.Context, _ int64, _ []search.UserHit) error { return nil }
func (stubEnricher) EnrichPosts(_ context.Context, _ int64, _ []search.PostHit) error { return nil }

type stubTrendingStore struct {
	top    []search.TrendingQuery
	recent []string
}

func (s *stubTrendingStore) RecordQuery(_ context.Context, _ int64, _ string) error { return nil }
func (s *stubTrendingStore) TopQueries(_ context.Context, _ int) ([]search.TrendingQuery, error) {
	return s.top, nil
}
func (s *stubTrendingStore) RecentQueries(_ context.Context, _ int64, _ int) ([]string, error) {
	return s.recent, nil
}

func newTestRouter(repo *stubSearchRepo, trending *stubTrendingStore, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	userUC := searchUC.NewUserSearchUseCase(repo, stubEnricher{}, nil, log)
	postUC := searchUC.NewPostSearchUseCase(repo, stubEnricher{}, nil, log)
	globalUC := searchUC.NewGlobalSearchUseCase(userUC, postUC, nil, log, 5)
	trendingUC := searchUC.NewTrendingUseCase(trending, log, 10)
	handler := NewSearchHandler(globalUC, userUC, postUC, trendingUC, log)

	router := gin.New()
	router.Use(ErrorMiddleware(log))
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set(GinContextKeyViewerID, int64(1))
			c.Next()
		})
	}

	api := router.Group("/api")
	api.GET("/search", handler.GlobalSearch)
	api.GET("/search/users", handler.UserSearch)
	api.GET("/search/posts", handler.PostSearch)
	api.GET("/search/trending", handler.Trending)
	return router
}

func doGet(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGlobalSearch_FanOutEnvelope(t *testing.T) {
	repo := &stubSearchRepo{
		userHits: []search.UserHit{{User: user.User{ID: 1, Username: "ann"}}},
		postHits: []search.PostHit{{AuthorUsername: "bob"}, {AuthorUsername: "cat"}},
	}
	router := newTestRouter(repo, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search?q=ann")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GlobalSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "all", resp.Scope)
	assert.Len(t, resp.Users, 1)
	assert.Len(t, resp.Posts, 2)
	require.NotNil(t, resp.Counts)
	assert.Equal(t, 1, resp.Counts.Users)
	assert.Equal(t, 2, resp.Counts.Posts)
	assert.Nil(t, resp.Pagination)
}

func TestGlobalSearch_ScopedEnvelopeHasPagination(t *testing.T) {
	repo := &stubSearchRepo{
		userHits:  []search.UserHit{{User: user.User{ID: 1, Username: "ann"}}},
		userTotal: 31,
	}
	router := newTestRouter(repo, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search?q=ann&scope=users&page=2&limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GlobalSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "users", resp.Scope)
	assert.Nil(t, resp.Counts)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 4, resp.Pagination.TotalPages)
	assert.Equal(t, int64(31), resp.Pagination.TotalResults)
}

func TestGlobalSearch_MissingQueryIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubSearchRepo{}, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid input")
}

func TestGlobalSearch_StoreOutageIsServiceUnavailable(t *testing.T) {
	repo := &stubSearchRepo{
		userErr: apperror.NewUnavailable("database unreachable", errors.New("dial refused")),
	}
	router := newTestRouter(repo, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search?q=ann")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGlobalSearch_MissingViewerIsForbidden(t *testing.T) {
	router := newTestRouter(&stubSearchRepo{}, &stubTrendingStore{}, false)

	rec := doGet(t, router, "/api/search?q=ann")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserSearch_Envelope(t *testing.T) {
	repo := &stubSearchRepo{
		userHits: []search.UserHit{
			{User: user.User{ID: 5, Username: "ann", FirstName: "Ann"}, PostCount: 3, FriendCount: 2},
		},
		userTotal: 1,
	}
	router := newTestRouter(repo, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search/users?q=ann")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PagedUsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, int64(5), resp.Users[0].ID)
	assert.Equal(t, "ann", resp.Users[0].Username)
	assert.Equal(t, int64(3), resp.Users[0].PostCount)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 20, resp.Pagination.Limit)
}

func TestPostSearch_RequiresCriterion(t *testing.T) {
	router := newTestRouter(&stubSearchRepo{}, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search/posts")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostSearch_Envelope(t *testing.T) {
	repo := &stubSearchRepo{
		postHits:  []search.PostHit{{AuthorUsername: "bob", LikeCount: 9}},
		postTotal: 1,
	}
	router := newTestRouter(repo, &stubTrendingStore{}, true)

	rec := doGet(t, router, "/api/search/posts?text=sunset&sort_by=likes")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PagedPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "bob", resp.Posts[0].AuthorUsername)
	assert.Equal(t, int64(9), resp.Posts[0].LikeCount)
}

func TestTrending_Envelope(t *testing.T) {
	trending := &stubTrendingStore{
		top:    []search.TrendingQuery{{Query: "sunset", Count: 4}},
		recent: []string{"coffee"},
	}
	router := newTestRouter(&stubSearchRepo{}, trending, true)

	rec := doGet(t, router, "/api/search/trending")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TrendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Trending, 1)
	assert.Equal(t, "sunset", resp.Trending[0].Query)
	assert.Equal(t, []string{"coffee"}, resp.Recent)
}
