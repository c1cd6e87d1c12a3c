package friendship

import "time"

// Status of the relationship between two users. Only accepted friendships
// grant friends-level post visibility.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Friendship is stored as a directed pair (who sent the request) but is
// semantically symmetric: at most one row exists per unordered pair, and
// every lookup must check both column orderings.
type Friendship struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	AddresseeID int64     `json:"addressee_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Involves reports whether the row links the two given users, in either
// direction.
func (f Friendship) Involves(a, b int64) bool {
	return (f.RequesterID == a && f.AddresseeID == b) ||
		(f.RequesterID == b && f.AddresseeID == a)
}
