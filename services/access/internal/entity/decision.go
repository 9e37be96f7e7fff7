package entity

// Decision is the outcome of an authorization check. Anything that is not an
// explicit Allow is a Deny: missing identities, missing grants and unknown
// resources all resolve to Deny, never to an error the caller could mistake
// for a grant.
type Decision int

const (
	DecisionDeny Decision = iota
	DecisionAllow
)

func (d Decision) Allowed() bool {
	return d == DecisionAllow
}

func (d Decision) String() string {
	if d == DecisionAllow {
		return "allow"
	}
	return "deny"
}

// RedactedProfileReason is the only information a viewer gets about a
// private profile they do not follow.
const RedactedProfileReason = "This profile is private. Follow to view details."

// ProfileView is the outcome of a visibility resolution: either the full
// profile data or a redaction reason, never a mix of the two.
type ProfileView struct {
	Redacted bool         `json:"redacted"`
	Reason   string       `json:"reason,omitempty"`
	Profile  *ProfileData `json:"profile,omitempty"`
}

// ProfileData is the fully disclosed profile representation. Follower and
// following counts are derived from the graph at read time, never stored.
type ProfileData struct {
	OwnerID        string `json:"owner_id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	Website        string `json:"website"`
	AvatarURL      string `json:"avatar_url"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	IsProfessional bool   `json:"is_professional"`
	Links          []Link `json:"links"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	ProfileViews   int64  `json:"profile_views"`
}

func FullProfileView(data *ProfileData) *ProfileView {
	return &ProfileView{Profile: data}
}

func RedactedProfileView() *ProfileView {
	return &ProfileView{Redacted: true, Reason: RedactedProfileReason}
}
