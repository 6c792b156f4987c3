package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// QuestionRepository defines the interface for question storage
type QuestionRepository interface {
	List(ctx context.Context) ([]*model.Question, error)
	Get(ctx context.Context, key string) (*model.Question, error)
	Create(ctx context.Context, q *model.Question) error
	UpdatePrompt(ctx context.Context, key, prompt string) error
	Delete(ctx context.Context, key string) error
}

// QuestionnaireService handles survey administration
type QuestionnaireService struct {
	repo QuestionRepository
}

// QuestionnaireServiceConfig holds configuration for the questionnaire service
type QuestionnaireServiceConfig struct {
	Repo QuestionRepository
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(cfg QuestionnaireServiceConfig) *QuestionnaireService {
	return &QuestionnaireService{repo: cfg.Repo}
}

// ListQuestions returns the current survey in creation order
func (s *QuestionnaireService) ListQuestions(ctx context.Context) ([]*model.Question, error) {
	return s.repo.List(ctx)
}

// RequireQuestions returns the survey, or ErrNoQuestions when it is empty
func (s *QuestionnaireService) RequireQuestions(ctx context.Context) ([]*model.Question, error) {
	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// AddQuestion validates and stores a new question
func (s *QuestionnaireService) AddQuestion(ctx context.Context, req model.CreateQuestionRequest) (*model.Question, error) {
	key := strings.TrimSpace(req.Key)
	if err := validateKey(key); err != nil {
		return nil, err
	}
	prompt, err := validatePrompt(req.Prompt)
	if err != nil {
		return nil, err
	}
	if !model.IsValidQuestionKind(req.Kind) {
		return nil, ErrInvalidQuestionKind
	}
	if !model.IsValidMatchMode(req.Mode) {
		return nil, ErrInvalidMatchMode
	}
	if req.Weight < 0 || math.IsNaN(req.Weight) || math.IsInf(req.Weight, 0) {
		return nil, ErrInvalidWeight
	}

	q := &model.Question{
		Key:     key,
		Prompt:  prompt,
		Kind:    req.Kind,
		Mode:    req.Mode,
		Weight:  req.Weight,
		Choices: model.ParseChoices(req.Choices),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrQuestionExists
		}
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// EditQuestion replaces the prompt of an existing question
func (s *QuestionnaireService) EditQuestion(ctx context.Context, key, prompt string) (*model.Question, error) {
	prompt, err := validatePrompt(prompt)
	if err != nil {
		return nil, err
	}

	q, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}

	if err := s.repo.UpdatePrompt(ctx, key, prompt); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("update question: %w", err)
	}
	q.Prompt = prompt
	return q, nil
}

// DeleteQuestion removes a question. Stored answers keep their value for the
// key, which no longer contributes to any score.
func (s *QuestionnaireService) DeleteQuestion(ctx context.Context, key string) error {
	q, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrQuestionNotFound
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func validateKey(key string) error {
	switch {
	case key == "":
		return ErrQuestionKeyRequired
	case utf8.RuneCountInString(key) > model.MaxKeyLength:
		return ErrQuestionKeyTooLong
	case key == model.BioKey:
		return ErrQuestionKeyReserved
	}
	return nil
}

func validatePrompt(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrPromptRequired
	}
	if utf8.RuneCountInString(prompt) > model.MaxPromptLength {
		return "", ErrPromptTooLong
	}
	return prompt, nil
}
