package http

import (
	"time"

	"github.com/khoahotran/connecthub/internal/domain/search"
	searchUC "github.com/khoahotran/connecthub/internal/application/usecase/search"
)

// Search DTOs

type UserResultDTO struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	Role             string    `json:"role"`
	FriendshipStatus *string   `json:"friendship_status"`
	PostCount        int64     `json:"post_count"`
	FriendCount      int64     `json:"friend_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToUserResultDTO(h search.UserHit) UserResultDTO {
	dto := UserResultDTO{
		ID:          h.ID,
		Username:    h.Username,
		FirstName:   h.FirstName,
		LastName:    h.LastName,
		Bio:         h.Bio,
		AvatarURL:   h.AvatarURL,
		Role:        string(h.Role),
		PostCount:   h.PostCount,
		FriendCount: h.FriendCount,
		CreatedAt:   h.CreatedAt,
	}
	if h.FriendshipStatus != nil {
		status := string(*h.FriendshipStatus)
		dto.FriendshipStatus = &status
	}
	return dto
}

type PostResultDTO struct {
	ID             int64     `json:"id"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Caption        string    `json:"caption"`
	LocationName   string    `json:"location_name"`
	PostType       string    `json:"post_type"`
	PrivacyLevel   string    `json:"privacy_level"`
	LikeCount      int64     `json:"like_count"`
	CommentCount   int64     `json:"comment_count"`
	ViewerHasLiked bool      `json:"viewer_has_liked"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToPostResultDTO(h search.PostHit) PostResultDTO {
	return PostResultDTO{
		ID:             h.ID,
		AuthorID:       h.AuthorID,
		AuthorUsername: h.AuthorUsername,
		Caption:        h.Caption,
		LocationName:   h.LocationName,
		PostType:       string(h.PostType),
		PrivacyLevel:   string(h.PrivacyLevel),
		LikeCount:      h.LikeCount,
		CommentCount:   h.CommentCount,
		ViewerHasLiked: h.ViewerHasLiked,
		CreatedAt:      h.CreatedAt,
	}
}

type PaginationDTO struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalResults int64 `json:"total_results"`
	Limit        int   `json:"limit"`
}

func ToPaginationDTO(p searchUC.Pagination) PaginationDTO {
	return PaginationDTO{
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
		Limit:        p.Limit,
	}
}

type PagedUsersResponse struct {
	Users      []UserResultDTO `json:"users"`
	Pagination PaginationDTO   `json:"pagination"`
}

type PagedPostsResponse struct {
	Posts      []PostResultDTO `json:"posts"`
	Pagination PaginationDTO   `json:"pagination"`
}

// GlobalSearchResponse carries either real pagination (single-entity
// scope) or preview counts (scope=all), never both.
type GlobalSearchResponse struct {
	Scope      string          `json:"scope"`
	Users      []UserResultDTO `json:"users,omitempty"`
	Posts      []PostResultDTO `json:"posts,omitempty"`
	Pagination *PaginationDTO  `json:"pagination,omitempty"`
	Counts     *CountsDTO      `json:"counts,omitempty"`
}

type CountsDTO struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
}

type TrendingQueryDTO struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

type TrendingResponse struct {
	Trending []TrendingQueryDTO `json:"trending"`
	Recent   []string           `json:"recent"`
}

func toUserResultDTOs(hits []search.UserHit) []UserResultDTO {
	dtos := make([]UserResultDTO, len(hits))
	for i, h := range hits {
		dtos[i] = ToUserResultDTO(h)
	}
	return dtos
}

func toPostResultDTOs(hits []search.PostHit) []PostResultDTO {
	dtos := make([]PostResultDTO, len(hits))
	for i, h := range hits {
		dtos[i] = ToPostResultDTO(h)
	}
	return dtos
}
