package model

import "time"

// Candidate is one scored entry of a browse list
type Candidate struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}

// MatchSession is an open accept/reject browse flow
type MatchSession struct {
	ID         string      `json:"id"`
	GuildID    string      `json:"guild_id"`
	OriginID   string      `json:"origin_id"`
	Candidates []Candidate `json:"candidates"`
	Index      int         `json:"index"`
	CreatedOn  time.Time   `json:"created_on"`
}

// Current returns the candidate under the cursor
func (s *MatchSession) Current() (Candidate, bool) {
	if s == nil || s.Index < 0 || s.Index >= len(s.Candidates) {
		return Candidate{}, false
	}
	return s.Candidates[s.Index], true
}

// Exhausted reports whether the cursor moved past the last candidate
func (s *MatchSession) Exhausted() bool {
	return s == nil || s.Index >= len(s.Candidates)
}

// ScoreBreakdown holds the component scores of one pair
type ScoreBreakdown struct {
	Answers     float64 `json:"answers"`
	Personality float64 `json:"personality"`
	Roles       float64 `json:"roles"`
	Total       float64 `json:"total"`
}

// Profile is the assembled view of one member
type Profile struct {
	Member       *Member            `json:"member"`
	Bio          string             `json:"bio"`
	Answers      AnswerSet          `json:"answers,omitempty"`
	Personality  PersonalityProfile `json:"personality,omitempty"`
	Genders      []string           `json:"genders,omitempty"`
	Orientations []string           `json:"orientations,omitempty"`
}
