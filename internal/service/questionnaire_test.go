package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

func validQuestionRequest() model.CreateQuestionRequest {
	return model.CreateQuestionRequest{
		Key:    "sleep",
		Prompt: "When do you go to bed?",
		Kind:   model.QuestionKindChoice,
		Mode:   model.MatchSimilarity,
		Weight: 1.5,
	}
}

// ============================================================================
// AddQuestion Tests
// ============================================================================

func TestAddQuestion_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var stored *model.Question
	repo := &mockQuestionRepo{
		createFunc: func(ctx context.Context, q *model.Question) error {
			stored = q
			return nil
		},
	}
	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: repo})

	req := validQuestionRequest()
	req.Key = "  sleep  "
	req.Choices = "early, late,, never "

	q, err := svc.AddQuestion(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != q {
		t.Fatal("expected created question to be stored")
	}
	if q.Key != "sleep" {
		t.Errorf("expected trimmed key 'sleep', got %q", q.Key)
	}
	if strings.Join(q.Choices, "|") != "early|late|never" {
		t.Errorf("unexpected choices %v", q.Choices)
	}
}

func TestAddQuestion_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *model.CreateQuestionRequest)
		want   error
	}{
		{"empty key", func(r *model.CreateQuestionRequest) { r.Key = "   " }, ErrQuestionKeyRequired},
		{"long key", func(r *model.CreateQuestionRequest) { r.Key = strings.Repeat("k", model.MaxKeyLength+1) }, ErrQuestionKeyTooLong},
		{"reserved key", func(r *model.CreateQuestionRequest) { r.Key = model.BioKey }, ErrQuestionKeyReserved},
		{"empty prompt", func(r *model.CreateQuestionRequest) { r.Prompt = "" }, ErrPromptRequired},
		{"long prompt", func(r *model.CreateQuestionRequest) { r.Prompt = strings.Repeat("a", 46) }, ErrPromptTooLong},
		{"bad kind", func(r *model.CreateQuestionRequest) { r.Kind = "text" }, ErrInvalidQuestionKind},
		{"bad mode", func(r *model.CreateQuestionRequest) { r.Mode = "opposite" }, ErrInvalidMatchMode},
		{"negative weight", func(r *model.CreateQuestionRequest) { r.Weight = -1 }, ErrInvalidWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: &mockQuestionRepo{
				createFunc: func(ctx context.Context, q *model.Question) error {
					t.Fatal("create must not be called for invalid input")
					return nil
				},
			}})
			req := validQuestionRequest()
			tt.mutate(&req)
			if _, err := svc.AddQuestion(ctx, req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAddQuestion_PromptAtLimit(t *testing.T) {
	t.Parallel()

	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: &mockQuestionRepo{}})
	req := validQuestionRequest()
	req.Prompt = strings.Repeat("é", model.MaxPromptLength)

	if _, err := svc.AddQuestion(context.Background(), req); err != nil {
		t.Fatalf("expected 45 character prompt to be accepted, got %v", err)
	}
}

func TestAddQuestion_DuplicateKey(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionRepo{
		createFunc: func(ctx context.Context, q *model.Question) error {
			return database.ErrDuplicate
		},
	}
	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: repo})

	_, err := svc.AddQuestion(context.Background(), validQuestionRequest())
	if !errors.Is(err, ErrQuestionExists) {
		t.Errorf("expected ErrQuestionExists, got %v", err)
	}
}

// ============================================================================
// EditQuestion / DeleteQuestion Tests
// ============================================================================

func TestEditQuestion_UpdatesPrompt(t *testing.T) {
	t.Parallel()

	var updated string
	repo := questionsOf(question("sleep", model.QuestionKindChoice, model.MatchSimilarity, 1))
	repo.updatePromptFunc = func(ctx context.Context, key, prompt string) error {
		updated = prompt
		return nil
	}
	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: repo})

	q, err := svc.EditQuestion(context.Background(), "sleep", " Bedtime? ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != "Bedtime?" || q.Prompt != "Bedtime?" {
		t.Errorf("expected prompt 'Bedtime?', got stored %q returned %q", updated, q.Prompt)
	}
}

func TestEditQuestion_UnknownKey(t *testing.T) {
	t.Parallel()

	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: questionsOf()})
	if _, err := svc.EditQuestion(context.Background(), "nope", "Prompt"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestEditQuestion_PromptTooLong(t *testing.T) {
	t.Parallel()

	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: questionsOf()})
	if _, err := svc.EditQuestion(context.Background(), "sleep", strings.Repeat("x", 46)); !errors.Is(err, ErrPromptTooLong) {
		t.Errorf("expected ErrPromptTooLong, got %v", err)
	}
}

func TestDeleteQuestion_UnknownKey(t *testing.T) {
	t.Parallel()

	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: questionsOf()})
	if err := svc.DeleteQuestion(context.Background(), "nope"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestDeleteQuestion_RaceMapsNotFound(t *testing.T) {
	t.Parallel()

	repo := questionsOf(question("sleep", model.QuestionKindChoice, model.MatchSimilarity, 1))
	repo.deleteFunc = func(ctx context.Context, key string) error {
		return database.ErrNotFound
	}
	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: repo})

	if err := svc.DeleteQuestion(context.Background(), "sleep"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestRequireQuestions_Empty(t *testing.T) {
	t.Parallel()

	svc := NewQuestionnaireService(QuestionnaireServiceConfig{Repo: questionsOf()})
	if _, err := svc.RequireQuestions(context.Background()); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("expected ErrNoQuestions, got %v", err)
	}
}
