package entity

import "time"

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Profile struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Bio            string    `json:"bio"`
	Website        string    `json:"website"`
	AvatarURL      string    `json:"avatar_url"`
	IsPrivate      bool      `json:"is_private"`
	IsVerified     bool      `json:"is_verified"`
	IsProfessional bool      `json:"is_professional"`
	Links          []Link    `json:"links"`
	ProfileViews   int64     `json:"profile_views"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
