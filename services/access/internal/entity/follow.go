package entity

import "time"

// FollowEdge is a directed edge in the social graph. A follows B does not
// imply B follows A.
type FollowEdge struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
