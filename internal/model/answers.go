package model

import (
	"sort"
	"time"
)

// BioKey is the reserved answer key holding the user's free-text bio.
// It never takes part in scoring.
const BioKey = "bio"

// MaxBioLength is the platform limit for a paragraph text input
const MaxBioLength = 4000

// AnswerSet maps question keys to a user's free-text answers
type AnswerSet map[string]string

// Get returns the answer for key and whether it was present
func (a AnswerSet) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[key]
	return v, ok
}

// Bio returns the reserved bio entry
func (a AnswerSet) Bio() string {
	return a[BioKey]
}

// Clone returns a copy that can be modified without touching the receiver
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SurveyKeys returns the answered keys except the bio, sorted
func (a AnswerSet) SurveyKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		if k == BioKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UserAnswers is the stored answer record of one user
type UserAnswers struct {
	UserID    string    `json:"user_id"`
	Answers   AnswerSet `json:"answers"`
	UpdatedOn time.Time `json:"updated_on"`
}
