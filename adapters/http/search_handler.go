package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	searchUC "github.com/khoahotran/connecthub/internal/application/usecase/search"
	"github.com/khoahotran/connecthub/pkg/apperror"
	"github.com/khoahotran/connecthub/pkg/logger"
)

type SearchHandler struct {
	globalSearchUseCase *searchUC.GlobalSearchUseCase
	userSearchUseCase   *searchUC.UserSearchUseCase
	postSearchUseCase   *searchUC.PostSearchUseCase
	trendingUseCase     *searchUC.TrendingUseCase
	logger              logger.Logger
}

func NewSearchHandler(
	globalUC *searchUC.GlobalSearchUseCase,
	userUC *searchUC.UserSearchUseCase,
	postUC *searchUC.PostSearchUseCase,
	trendingUC *searchUC.TrendingUseCase,
	log logger.Logger,
) *SearchHandler {
	return &SearchHandler{
		globalSearchUseCase: globalUC,
		userSearchUseCase:   userUC,
		postSearchUseCase:   postUC,
		trendingUseCase:     trendingUC,
		logger:              log,
	}
}

func (h *SearchHandler) GlobalSearch(c *gin.Context) {
	viewerID, ok := GetViewerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("viewerID not found in context"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := searchUC.GlobalSearchInput{
		Query:    c.Query("q"),
		Scope:    c.DefaultQuery("scope", "all"),
		Page:     page,
		Limit:    limit,
		ViewerID: viewerID,
	}
	output, err := h.globalSearchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	resp := GlobalSearchResponse{
		Scope: string(output.Scope),
		Users: toUserResultDTOs(output.Users),
		Posts: toPostResultDTOs(output.Posts),
	}
	if output.Pagination != nil {
		dto := ToPaginationDTO(*output.Pagination)
		resp.Pagination = &dto
	}
	if output.Counts != nil {
		resp.Counts = &CountsDTO{Users: output.Counts.Users, Posts: output.Counts.Posts}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) UserSearch(c *gin.Context) {
	viewerID, ok := GetViewerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("viewerID not found in context"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := searchUC.UserSearchInput{
		Query:    c.Query("q"),
		Role:     c.Query("role"),
		Status:   c.DefaultQuery("status", "active"),
		Page:     page,
		Limit:    limit,
		ViewerID: viewerID,
	}
	output, err := h.userSearchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PagedUsersResponse{
		Users:      toUserResultDTOs(output.Users),
		Pagination: ToPaginationDTO(output.Pagination),
	})
}

func (h *SearchHandler) PostSearch(c *gin.Context) {
	viewerID, ok := GetViewerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("viewerID not found in context"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := searchUC.PostSearchInput{
		Text:     c.Query("text"),
		Location: c.Query("location"),
		Author:   c.Query("author"),
		PostType: c.Query("post_type"),
		Privacy:  c.Query("privacy"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		SortBy:   c.DefaultQuery("sort_by", "relevance"),
		Page:     page,
		Limit:    limit,
		ViewerID: viewerID,
	}
	output, err := h.postSearchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PagedPostsResponse{
		Posts:      toPostResultDTOs(output.Posts),
		Pagination: ToPaginationDTO(output.Pagination),
	})
}

func (h *SearchHandler) Trending(c *gin.Context) {
	viewerID, ok := GetViewerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("viewerID not found in context"))
		return
	}

	output, err := h.trendingUseCase.Execute(c.Request.Context(), viewerID)
	if err != nil {
		c.Error(err)
		return
	}

	trending := make([]TrendingQueryDTO, len(output.Trending))
	for i, t := range output.Trending {
		trending[i] = TrendingQueryDTO{Query: t.Query, Count: t.Count}
	}

	c.JSON(http.StatusOK, TrendingResponse{
		Trending: trending,
		Recent:   output.Recent,
	})
}
