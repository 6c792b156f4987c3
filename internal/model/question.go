package model

import (
	"strings"
	"time"
)

// QuestionKind describes how an answer is entered
type QuestionKind string

const (
	QuestionKindChoice QuestionKind = "choice"
	QuestionKindNumber QuestionKind = "number"
)

// MatchMode describes how two answers to the same question are compared
type MatchMode string

const (
	// MatchSimilarity awards points when both users gave the same answer
	MatchSimilarity MatchMode = "similarity"
	// MatchComplementary awards points when the answers differ (choice) or
	// are numerically close (number)
	MatchComplementary MatchMode = "complementary"
)

// Question constraints
const (
	// MaxPromptLength is the platform limit for a modal text input label
	MaxPromptLength = 45
	MaxKeyLength    = 100
)

// Question represents an administrator-defined survey question
type Question struct {
	Key       string       `json:"key"`
	Prompt    string       `json:"prompt"`
	Kind      QuestionKind `json:"kind"`
	Mode      MatchMode    `json:"mode"`
	Weight    float64      `json:"weight"`
	Choices   []string     `json:"choices,omitempty"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}

// IsValidQuestionKind reports whether kind is a known question kind
func IsValidQuestionKind(kind QuestionKind) bool {
	return kind == QuestionKindChoice || kind == QuestionKindNumber
}

// IsValidMatchMode reports whether mode is a known comparison mode
func IsValidMatchMode(mode MatchMode) bool {
	return mode == MatchSimilarity || mode == MatchComplementary
}

// ParseChoices splits a comma separated choice list, dropping blank entries
func ParseChoices(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			choices = append(choices, c)
		}
	}
	return choices
}

// CreateQuestionRequest represents a request to add a question
type CreateQuestionRequest struct {
	Key     string       `json:"key"`
	Prompt  string       `json:"prompt"`
	Kind    QuestionKind `json:"kind"`
	Mode    MatchMode    `json:"mode"`
	Weight  float64      `json:"weight"`
	Choices string       `json:"choices,omitempty"` // Comma separated
}
