package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// AnswerRepository defines the interface for per-user answer storage
type AnswerRepository interface {
	Get(ctx context.Context, userID string) (*model.UserAnswers, error)
	List(ctx context.Context) ([]*model.UserAnswers, error)
	Put(ctx context.Context, userID string, answers model.AnswerSet) error
	Delete(ctx context.Context, userID string) error
}

// AnswerService handles survey answer registration and edits
type AnswerService struct {
	answers   AnswerRepository
	questions QuestionRepository
	locks     *KeyedMutex
}

// AnswerServiceConfig holds configuration for the answer service
type AnswerServiceConfig struct {
	Answers   AnswerRepository
	Questions QuestionRepository
	Locks     *KeyedMutex
}

// NewAnswerService creates a new answer service
func NewAnswerService(cfg AnswerServiceConfig) *AnswerService {
	if cfg.Locks == nil {
		cfg.Locks = NewKeyedMutex()
	}
	return &AnswerService{
		answers:   cfg.Answers,
		questions: cfg.Questions,
		locks:     cfg.Locks,
	}
}

// Get returns the stored answers of a user, or nil when none exist
func (s *AnswerService) Get(ctx context.Context, userID string) (*model.UserAnswers, error) {
	return s.answers.Get(ctx, userID)
}

// Register starts a fresh registration: previous survey answers are replaced
// by page, the bio is carried over.
func (s *AnswerService) Register(ctx context.Context, userID string, page model.AnswerSet) error {
	return s.submit(ctx, userID, page, true, false)
}

// ContinueRegistration merges a later registration page into the answers
// stored by Register.
func (s *AnswerService) ContinueRegistration(ctx context.Context, userID string, page model.AnswerSet) error {
	return s.submit(ctx, userID, page, false, false)
}

// EditResponses merges an edit page into existing answers. Users who never
// registered get ErrNoAnswers.
func (s *AnswerService) EditResponses(ctx context.Context, userID string, page model.AnswerSet) error {
	return s.submit(ctx, userID, page, false, true)
}

func (s *AnswerService) submit(ctx context.Context, userID string, page model.AnswerSet, replace, requireExisting bool) error {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.Key] = true
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.answers.Get(ctx, userID)
	if err != nil {
		return err
	}
	if current == nil && requireExisting {
		return ErrNoAnswers
	}

	next := model.AnswerSet{}
	if current != nil {
		if replace {
			if bio := current.Answers.Bio(); bio != "" {
				next[model.BioKey] = bio
			}
		} else {
			next = current.Answers.Clone()
		}
	}
	for key, value := range page {
		if !known[key] {
			continue
		}
		next[key] = value
	}

	if err := s.answers.Put(ctx, userID, next); err != nil {
		return fmt.Errorf("save answers: %w", err)
	}
	return nil
}

// EditAnswer replaces one answer the user already gave
func (s *AnswerService) EditAnswer(ctx context.Context, userID, key, value string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.answers.Get(ctx, userID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNoAnswers
	}
	if _, ok := current.Answers.Get(key); !ok {
		return ErrAnswerKeyNotFound
	}
	if key == model.BioKey && utf8.RuneCountInString(value) > model.MaxBioLength {
		return ErrBioTooLong
	}

	next := current.Answers.Clone()
	next[key] = value
	if err := s.answers.Put(ctx, userID, next); err != nil {
		return fmt.Errorf("save answers: %w", err)
	}
	return nil
}

// Bio returns the stored bio of a user, empty when none
func (s *AnswerService) Bio(ctx context.Context, userID string) (string, error) {
	current, err := s.answers.Get(ctx, userID)
	if err != nil || current == nil {
		return "", err
	}
	return current.Answers.Bio(), nil
}

// SetBio stores the bio, creating the answer record when needed
func (s *AnswerService) SetBio(ctx context.Context, userID, bio string) error {
	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > model.MaxBioLength {
		return ErrBioTooLong
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	current, err := s.answers.Get(ctx, userID)
	if err != nil {
		return err
	}
	next := model.AnswerSet{}
	if current != nil {
		next = current.Answers.Clone()
	}
	next[model.BioKey] = bio

	if err := s.answers.Put(ctx, userID, next); err != nil {
		return fmt.Errorf("save bio: %w", err)
	}
	return nil
}

// Clear deletes every answer of the user, bio included
func (s *AnswerService) Clear(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.answers.Delete(ctx, userID)
}

// Search returns the sorted IDs of users whose answer to key equals value,
// ignoring case
func (s *AnswerService) Search(ctx context.Context, key, value string) ([]string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSearchKeyRequired
	}
	want := strings.ToLower(strings.TrimSpace(value))
	if want == "" {
		return nil, ErrSearchValueRequired
	}

	all, err := s.answers.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, ua := range all {
		got, ok := ua.Answers.Get(key)
		if ok && strings.ToLower(strings.TrimSpace(got)) == want {
			matches = append(matches, ua.UserID)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
