package model

// Member is a community member as seen by the chat platform at query time
type Member struct {
	UserID      string   `json:"user_id"`
	GuildID     string   `json:"guild_id"`
	DisplayName string   `json:"display_name"`
	Tag         string   `json:"tag"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Roles       []string `json:"roles"`
}

// Mention returns the platform mention markup for the member
func (m *Member) Mention() string {
	return MentionUser(m.UserID)
}

// MentionUser returns the mention markup for a user ID
func MentionUser(userID string) string {
	return "<@" + userID + ">"
}
