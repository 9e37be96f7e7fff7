package entity

import (
	"fmt"
	"time"
)

// AccessLevel is the ordered privilege tier for a resource.
type AccessLevel string

const (
	LevelNone  AccessLevel = "NONE"
	LevelView  AccessLevel = "VIEW"
	LevelWrite AccessLevel = "WRITE"
	LevelFull  AccessLevel = "FULL"
)

var levelRank = map[AccessLevel]int{
	LevelNone:  0,
	LevelView:  1,
	LevelWrite: 2,
	LevelFull:  3,
}

// Rank returns the position of the level in the NONE < VIEW < WRITE < FULL
// ordering. Unknown levels rank below NONE so they never satisfy anything.
func (l AccessLevel) Rank() int {
	if rank, ok := levelRank[l]; ok {
		return rank
	}
	return -1
}

// Satisfies reports whether the level grants at least the required level.
func (l AccessLevel) Satisfies(required AccessLevel) bool {
	return l.Rank() >= required.Rank() && l.Rank() >= 0
}

// Max returns the more privileged of the two levels.
func (l AccessLevel) Max(other AccessLevel) AccessLevel {
	if other.Rank() > l.Rank() {
		return other
	}
	return l
}

func ParseAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(s)
	if _, ok := levelRank[level]; !ok {
		return LevelNone, fmt.Errorf("unknown access level %q", s)
	}
	return level, nil
}

type Resource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Permission struct {
	ID       string      `json:"id"`
	Resource string      `json:"resource"`
	Level    AccessLevel `json:"level"`
}

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
}

type RoleAssignment struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	RoleID     string    `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Grant is one entry of a resolved permission set: the maximum access level
// an identity holds for a resource across all of its roles.
type Grant struct {
	Resource string      `json:"resource"`
	Level    AccessLevel `json:"level"`
}
