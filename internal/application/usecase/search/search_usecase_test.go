package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/connecthub/internal/domain/search"
	"github.com/khoahotran/connecthub/internal/domain/user"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

type fakeSearchRepo struct {
	userHits  []search.UserHit
	userTotal int64
	userErr   error
	postHits  []search.PostHit
	postTotal int64
	postErr   error

	lastUserQuery *search.UserQuery
	lastPostQuery *search.PostQuery
	userCalls     int
	postCalls     int
}

func (f *fakeSearchRepo) SearchUsers(_ context.Context, q search.UserQuery) ([]search.UserHit, int64, error) {
	f.userCalls++
	f.lastUserQuery = &q
	return f.userHits, f.userTotal, f.userErr
}

func (f *fakeSearchRepo) SearchPosts(_ context.Context, q search.PostQuery) ([]search.PostHit, int64, error) {
	f.postCalls++
	f.lastPostQuery = &q
	return f.postHits, f.postTotal, f.postErr
}

type fakeEnricher struct {
	userErr error
	postErr error
}

func (f *fakeEnricher) EnrichUsers(_ context.Context, _ int64, _ []search.UserHit) error {
	return f.userErr
}

func (f *fakeEnricher) EnrichPosts(_ context.Context, _ int64, _ []search.PostHit) error {
	return f.postErr
}

func userHits(n int) []search.UserHit {
	hits := make([]search.UserHit, n)
	for i := range hits {
		hits[i].ID = int64(i + 1)
	}
	return hits
}

func postHits(n int) []search.PostHit {
	hits := make([]search.PostHit, n)
	for i := range hits {
		hits[i].ID = int64(i + 1)
	}
	return hits
}

func newUserUC(repo *fakeSearchRepo, enr *fakeEnricher) *UserSearchUseCase {
	return NewUserSearchUseCase(repo, enr, nil, logger.NewNop())
}

func newPostUC(repo *fakeSearchRepo, enr *fakeEnricher) *PostSearchUseCase {
	return NewPostSearchUseCase(repo, enr, nil, logger.NewNop())
}

func newGlobalUC(repo *fakeSearchRepo, enr *fakeEnricher, previewSize int) *GlobalSearchUseCase {
	return NewGlobalSearchUseCase(newUserUC(repo, enr), newPostUC(repo, enr), nil, logger.NewNop(), previewSize)
}

func TestUserSearch_RequiresTerm(t *testing.T) {
	uc := newUserUC(&fakeSearchRepo{}, &fakeEnricher{})

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := uc.Execute(context.Background(), UserSearchInput{Query: q})
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, appErr, apperror.ErrInvalidInput)
	}
}

func TestUserSearch_ClampsPagination(t *testing.T) {
	tests := []struct {
		name                  string
		page, limit           int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"negative page", -3, 10, 10, 0},
		{"limit above max", 1, 100, 20, 0},
		{"limit at max", 1, 50, 50, 0},
		{"offset from page", 3, 10, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSearchRepo{}
			uc := newUserUC(repo, &fakeEnricher{})

			_, err := uc.Execute(context.Background(), UserSearchInput{Query: "ann", Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			require.NotNil(t, repo.lastUserQuery)
			assert.Equal(t, tt.wantLimit, repo.lastUserQuery.Limit)
			assert.Equal(t, tt.wantOffset, repo.lastUserQuery.Offset)
		})
	}
}

func TestUserSearch_DropsBadFilters(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := newUserUC(repo, &fakeEnricher{})

	_, err := uc.Execute(context.Background(), UserSearchInput{
		Query:    "ann",
		Role:     "superuser",
		Status:   "banana",
		ViewerID: 42,
	})
	require.NoError(t, err)

	q := repo.lastUserQuery
	require.NotNil(t, q)
	assert.Equal(t, user.Role(""), q.Role)
	assert.Equal(t, user.FilterActive, q.Status)
	assert.Equal(t, int64(42), q.ExcludeID)
}

func TestUserSearch_Pagination(t *testing.T) {
	repo := &fakeSearchRepo{userHits: userHits(3), userTotal: 47}
	uc := newUserUC(repo, &fakeEnricher{})

	out, err := uc.Execute(context.Background(), UserSearchInput{Query: "ann", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Users, 3)
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 5, TotalResults: 47, Limit: 10}, out.Pagination)
}

func TestUserSearch_PropagatesErrors(t *testing.T) {
	storeErr := apperror.NewUnavailable("database unreachable", errors.New("dial refused"))

	uc := newUserUC(&fakeSearchRepo{userErr: storeErr}, &fakeEnricher{})
	_, err := uc.Execute(context.Background(), UserSearchInput{Query: "ann"})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)

	uc = newUserUC(&fakeSearchRepo{userHits: userHits(1), userTotal: 1}, &fakeEnricher{userErr: storeErr})
	_, err = uc.Execute(context.Background(), UserSearchInput{Query: "ann"})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestPostSearch_RequiresSomeCriterion(t *testing.T) {
	uc := newPostUC(&fakeSearchRepo{}, &fakeEnricher{})

	_, err := uc.Execute(context.Background(), PostSearchInput{Text: " ", Location: "", Author: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPostSearch_AuthorAloneIsEnough(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := newPostUC(repo, &fakeEnricher{})

	_, err := uc.Execute(context.Background(), PostSearchInput{Author: "ann"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastPostQuery)
	assert.Equal(t, "ann", repo.lastPostQuery.Author)
	assert.True(t, repo.lastPostQuery.Text.IsEmpty())
}

func TestPostSearch_DropsBadFilters(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := newPostUC(repo, &fakeEnricher{})

	_, err := uc.Execute(context.Background(), PostSearchInput{
		Text:     "sunset",
		PostType: "reel",
		Privacy:  "private",
		SortBy:   "popularity",
		DateFrom: "not-a-date",
		DateTo:   "2026-02-30",
	})
	require.NoError(t, err)

	q := repo.lastPostQuery
	require.NotNil(t, q)
	assert.Empty(t, q.Type)
	assert.Empty(t, q.Privacy)
	assert.Equal(t, search.SortRelevance, q.SortBy)
	assert.Nil(t, q.DateFrom)
	assert.Nil(t, q.DateTo)
}

func TestPostSearch_ParsesDateRange(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := newPostUC(repo, &fakeEnricher{})

	_, err := uc.Execute(context.Background(), PostSearchInput{
		Text:     "sunset",
		DateFrom: "2026-01-01",
		DateTo:   "2026-06-30",
	})
	require.NoError(t, err)

	q := repo.lastPostQuery
	require.NotNil(t, q)
	require.NotNil(t, q.DateFrom)
	require.NotNil(t, q.DateTo)
	assert.Equal(t, "2026-01-01", q.DateFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-06-30", q.DateTo.Format("2006-01-02"))
}

func TestGlobalSearch_RequiresQuery(t *testing.T) {
	uc := newGlobalUC(&fakeSearchRepo{}, &fakeEnricher{}, 5)

	_, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGlobalSearch_ScopeUsers(t *testing.T) {
	repo := &fakeSearchRepo{userHits: userHits(2), userTotal: 2}
	uc := newGlobalUC(repo, &fakeEnricher{}, 5)

	out, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "ann", Scope: "users", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, search.ScopeUsers, out.Scope)
	assert.Len(t, out.Users, 2)
	assert.Empty(t, out.Posts)
	require.NotNil(t, out.Pagination)
	assert.Nil(t, out.Counts)
	assert.Zero(t, repo.postCalls)
}

func TestGlobalSearch_ScopePosts(t *testing.T) {
	repo := &fakeSearchRepo{postHits: postHits(3), postTotal: 3}
	uc := newGlobalUC(repo, &fakeEnricher{}, 5)

	out, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "sunset", Scope: "posts", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, search.ScopePosts, out.Scope)
	assert.Len(t, out.Posts, 3)
	require.NotNil(t, out.Pagination)
	assert.Zero(t, repo.userCalls)
}

func TestGlobalSearch_UnknownScopeFansOut(t *testing.T) {
	repo := &fakeSearchRepo{userHits: userHits(1), postHits: postHits(2)}
	uc := newGlobalUC(repo, &fakeEnricher{}, 5)

	out, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "ann", Scope: "everything"})
	require.NoError(t, err)
	assert.Equal(t, search.ScopeAll, out.Scope)
	assert.Equal(t, 1, repo.userCalls)
	assert.Equal(t, 1, repo.postCalls)
}

func TestGlobalSearch_FanOutPreviewCap(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		wantPreview int
	}{
		{"limit above preview size", 20, 5},
		{"limit below preview size", 3, 3},
		{"limit zero falls back to default", 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSearchRepo{}
			uc := newGlobalUC(repo, &fakeEnricher{}, 5)

			_, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "ann", Limit: tt.limit, Page: 7})
			require.NoError(t, err)

			require.NotNil(t, repo.lastUserQuery)
			require.NotNil(t, repo.lastPostQuery)
			assert.Equal(t, tt.wantPreview, repo.lastUserQuery.Limit)
			assert.Equal(t, tt.wantPreview, repo.lastPostQuery.Limit)
			// previews always start from the first page
			assert.Zero(t, repo.lastUserQuery.Offset)
			assert.Zero(t, repo.lastPostQuery.Offset)
		})
	}
}

func TestGlobalSearch_FanOutCountsAreReturnedLengths(t *testing.T) {
	repo := &fakeSearchRepo{
		userHits: userHits(2), userTotal: 90,
		postHits: postHits(5), postTotal: 400,
	}
	uc := newGlobalUC(repo, &fakeEnricher{}, 5)

	out, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "ann"})
	require.NoError(t, err)
	require.NotNil(t, out.Counts)
	assert.Equal(t, 2, out.Counts.Users)
	assert.Equal(t, 5, out.Counts.Posts)
	assert.Nil(t, out.Pagination)
}

func TestGlobalSearch_FanOutAbortsOnFirstError(t *testing.T) {
	storeErr := apperror.NewUnavailable("database unreachable", errors.New("dial refused"))
	repo := &fakeSearchRepo{userErr: storeErr}
	uc := newGlobalUC(repo, &fakeEnricher{}, 5)

	_, err := uc.Execute(context.Background(), GlobalSearchInput{Query: "ann"})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
	assert.Zero(t, repo.postCalls)
}
