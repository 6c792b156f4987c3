// Package fixtures provides test data factories for repository and service
// tests.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. The factory writes through the same
// repository interfaces the services use, so it works with every storage
// backend.
//
// Usage:
//
//	f := fixtures.New(fixtures.Stores{Questions: qr, Answers: ar})
//	q := f.CreateQuestion(t)
//	f.RegisterAnswers(t, "user-1", model.AnswerSet{q.Key: "yes"})
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// QuestionWriter is the subset of a question repository the factory needs
type QuestionWriter interface {
	Create(ctx context.Context, q *model.Question) error
}

// AnswerWriter is the subset of an answer repository the factory needs
type AnswerWriter interface {
	Put(ctx context.Context, userID string, answers model.AnswerSet) error
}

// PersonalityWriter is the subset of a personality repository the factory needs
type PersonalityWriter interface {
	Put(ctx context.Context, userID string, profile model.PersonalityProfile) error
}

// RoleCompatibilityWriter is the subset of a role compatibility repository the factory needs
type RoleCompatibilityWriter interface {
	Upsert(ctx context.Context, entry *model.RoleCompatibility) error
}

// RoleTagWriter is the subset of a role tag repository the factory needs
type RoleTagWriter interface {
	Upsert(ctx context.Context, tag *model.RoleTag) error
}

// Stores groups the writers a Factory seeds through. Nil writers make the
// matching factory method fail the test.
type Stores struct {
	Questions   QuestionWriter
	Answers     AnswerWriter
	Personality PersonalityWriter
	Roles       RoleCompatibilityWriter
	RoleTags    RoleTagWriter
}

// Factory creates test entities in a store
type Factory struct {
	stores Stores
}

// New creates a new fixture factory
func New(stores Stores) *Factory {
	return &Factory{stores: stores}
}

// RandomID generates a random hex ID
func RandomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// Question Fixtures
// ============================================================================

// QuestionOpts customizes question creation
type QuestionOpts struct {
	Key     string
	Prompt  string
	Kind    model.QuestionKind
	Mode    model.MatchMode
	Weight  float64
	Choices []string
}

// NewQuestion builds a question without storing it
func NewQuestion(opts ...func(*QuestionOpts)) *model.Question {
	id := RandomID()
	o := &QuestionOpts{
		Key:    "q_" + id,
		Prompt: fmt.Sprintf("Question %s?", id[:6]),
		Kind:   model.QuestionKindChoice,
		Mode:   model.MatchSimilarity,
		Weight: 1,
	}
	for _, fn := range opts {
		fn(o)
	}
	return &model.Question{
		Key:     o.Key,
		Prompt:  o.Prompt,
		Kind:    o.Kind,
		Mode:    o.Mode,
		Weight:  o.Weight,
		Choices: o.Choices,
	}
}

// WithKey sets the question key
func WithKey(key string) func(*QuestionOpts) {
	return func(o *QuestionOpts) { o.Key = key }
}

// WithPrompt sets the question prompt
func WithPrompt(prompt string) func(*QuestionOpts) {
	return func(o *QuestionOpts) { o.Prompt = prompt }
}

// WithWeight sets the question weight
func WithWeight(weight float64) func(*QuestionOpts) {
	return func(o *QuestionOpts) { o.Weight = weight }
}

// WithChoices sets the allowed choice values
func WithChoices(choices ...string) func(*QuestionOpts) {
	return func(o *QuestionOpts) { o.Choices = choices }
}

// Numeric makes the question a complementary number question
func Numeric() func(*QuestionOpts) {
	return func(o *QuestionOpts) {
		o.Kind = model.QuestionKindNumber
		o.Mode = model.MatchComplementary
	}
}

// Complementary switches the question to complementary matching
func Complementary() func(*QuestionOpts) {
	return func(o *QuestionOpts) { o.Mode = model.MatchComplementary }
}

// CreateQuestion stores a question with optional customizations
func (f *Factory) CreateQuestion(t *testing.T, opts ...func(*QuestionOpts)) *model.Question {
	t.Helper()
	if f.stores.Questions == nil {
		t.Fatal("fixtures: no question store configured")
	}

	q := NewQuestion(opts...)
	if err := f.stores.Questions.Create(ctx(t), q); err != nil {
		t.Fatalf("fixtures: failed to create question: %v", err)
	}
	return q
}

// ============================================================================
// User Data Fixtures
// ============================================================================

// RegisterAnswers stores the answer set of a user
func (f *Factory) RegisterAnswers(t *testing.T, userID string, answers model.AnswerSet) {
	t.Helper()
	if f.stores.Answers == nil {
		t.Fatal("fixtures: no answer store configured")
	}
	if err := f.stores.Answers.Put(ctx(t), userID, answers); err != nil {
		t.Fatalf("fixtures: failed to store answers: %v", err)
	}
}

// ImportPersonality stores the personality profile of a user
func (f *Factory) ImportPersonality(t *testing.T, userID string, profile model.PersonalityProfile) {
	t.Helper()
	if f.stores.Personality == nil {
		t.Fatal("fixtures: no personality store configured")
	}
	if err := f.stores.Personality.Put(ctx(t), userID, profile); err != nil {
		t.Fatalf("fixtures: failed to store personality: %v", err)
	}
}

// ============================================================================
// Role Fixtures
// ============================================================================

// SetRoleCompatibility stores a directional role bonus
func (f *Factory) SetRoleCompatibility(t *testing.T, from, to string, score float64) *model.RoleCompatibility {
	t.Helper()
	if f.stores.Roles == nil {
		t.Fatal("fixtures: no role compatibility store configured")
	}
	entry := &model.RoleCompatibility{From: from, To: to, Score: score}
	if err := f.stores.Roles.Upsert(ctx(t), entry); err != nil {
		t.Fatalf("fixtures: failed to store role compatibility: %v", err)
	}
	return entry
}

// TagRole stores a gender or orientation label for a role
func (f *Factory) TagRole(t *testing.T, kind model.RoleTagKind, roleID, label string) *model.RoleTag {
	t.Helper()
	if f.stores.RoleTags == nil {
		t.Fatal("fixtures: no role tag store configured")
	}
	tag := &model.RoleTag{Kind: kind, RoleID: roleID, Label: label}
	if err := f.stores.RoleTags.Upsert(ctx(t), tag); err != nil {
		t.Fatalf("fixtures: failed to store role tag: %v", err)
	}
	return tag
}
