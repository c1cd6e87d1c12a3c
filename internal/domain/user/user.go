package user

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// ParseRole maps a raw filter value onto a known role. Unknown values are
// dropped, not rejected: people search ignores a bad role filter instead of
// failing the whole request.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleAdmin, RoleModerator:
		return Role(raw), true
	}
	return "", false
}

type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
	StatusDeleted   AccountStatus = "deleted"
)

// StatusFilter is what callers may ask for. "all" still excludes deleted
// accounts; only active and suspended rows are ever returned.
type StatusFilter string

const (
	FilterActive    StatusFilter = "active"
	FilterSuspended StatusFilter = "suspended"
	FilterAll       StatusFilter = "all"
)

// StatusFilterOrDefault normalizes an unrecognized value to the active
// filter, same silent policy as the other enum filters.
func StatusFilterOrDefault(raw string) StatusFilter {
	switch StatusFilter(raw) {
	case FilterActive, FilterSuspended, FilterAll:
		return StatusFilter(raw)
	}
	return FilterActive
}

type User struct {
	ID            int64         `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Bio           string        `json:"bio"`
	AvatarURL     *string       `json:"avatar_url"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"account_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
