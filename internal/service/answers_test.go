package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

func newTestAnswerService(answers *memAnswerRepo) *AnswerService {
	return NewAnswerService(AnswerServiceConfig{
		Answers: answers,
		Questions: questionsOf(
			question("sleep", model.QuestionKindChoice, model.MatchSimilarity, 1),
			question("age", model.QuestionKindNumber, model.MatchComplementary, 1),
			question("pet", model.QuestionKindChoice, model.MatchSimilarity, 1),
		),
	})
}

// ============================================================================
// Registration Tests
// ============================================================================

func TestRegister_ReplacesAnswersKeepsBio(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	repo.data["u1"] = model.AnswerSet{"sleep": "late", "pet": "cat", model.BioKey: "hello"}
	svc := newTestAnswerService(repo)

	if err := svc.Register(ctx, "u1", model.AnswerSet{"sleep": "early", "unknown": "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.data["u1"]
	if got["sleep"] != "early" {
		t.Errorf("expected sleep 'early', got %q", got["sleep"])
	}
	if _, ok := got["pet"]; ok {
		t.Error("expected previous answers to be replaced")
	}
	if _, ok := got["unknown"]; ok {
		t.Error("expected unknown keys to be dropped")
	}
	if got.Bio() != "hello" {
		t.Errorf("expected bio to survive registration, got %q", got.Bio())
	}
}

func TestRegister_StoresValuesAsTyped(t *testing.T) {
	t.Parallel()

	repo := newMemAnswerRepo()
	svc := newTestAnswerService(repo)

	err := svc.Register(context.Background(), "u1", model.AnswerSet{"sleep": " late ", "pet": ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.data["u1"]
	if got["sleep"] != " late " {
		t.Errorf("expected value stored verbatim, got %q", got["sleep"])
	}
	if v, ok := got["pet"]; !ok || v != "" {
		t.Errorf("expected blank answer stored, got %q (present=%v)", v, ok)
	}
}

func TestContinueRegistration_MergesPages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	svc := newTestAnswerService(repo)

	if err := svc.Register(ctx, "u1", model.AnswerSet{"sleep": "late"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ContinueRegistration(ctx, "u1", model.AnswerSet{"age": "30"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.data["u1"]
	if got["sleep"] != "late" || got["age"] != "30" {
		t.Errorf("expected both pages merged, got %v", got)
	}
}

func TestEditResponses_RequiresRegistration(t *testing.T) {
	t.Parallel()

	svc := newTestAnswerService(newMemAnswerRepo())
	err := svc.EditResponses(context.Background(), "u1", model.AnswerSet{"sleep": "late"})
	if !errors.Is(err, ErrNoAnswers) {
		t.Errorf("expected ErrNoAnswers, got %v", err)
	}
}

func TestEditResponses_OverwritesSubmittedKeys(t *testing.T) {
	t.Parallel()

	repo := newMemAnswerRepo()
	repo.data["u1"] = model.AnswerSet{"sleep": "late", "pet": "cat", model.BioKey: "hi"}
	svc := newTestAnswerService(repo)

	if err := svc.EditResponses(context.Background(), "u1", model.AnswerSet{"pet": "dog"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.data["u1"]
	if got["pet"] != "dog" || got["sleep"] != "late" || got.Bio() != "hi" {
		t.Errorf("unexpected answers after edit: %v", got)
	}
}

func TestSubmit_ConcurrentPagesDoNotLoseUpdates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	repo.data["u1"] = model.AnswerSet{}
	svc := newTestAnswerService(repo)

	var wg sync.WaitGroup
	for _, key := range []string{"sleep", "age", "pet"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.EditResponses(ctx, "u1", model.AnswerSet{key: "v-" + key}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(repo.data["u1"]) != 3 {
		t.Errorf("expected all three answers, got %v", repo.data["u1"])
	}
}

// ============================================================================
// EditAnswer / Bio Tests
// ============================================================================

func TestEditAnswer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	repo.data["u1"] = model.AnswerSet{"sleep": "late"}
	svc := newTestAnswerService(repo)

	if err := svc.EditAnswer(ctx, "u1", "sleep", "early"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.data["u1"]["sleep"] != "early" {
		t.Errorf("expected updated answer, got %q", repo.data["u1"]["sleep"])
	}

	if err := svc.EditAnswer(ctx, "u1", "pet", "dog"); !errors.Is(err, ErrAnswerKeyNotFound) {
		t.Errorf("expected ErrAnswerKeyNotFound, got %v", err)
	}
	if err := svc.EditAnswer(ctx, "u2", "sleep", "early"); !errors.Is(err, ErrNoAnswers) {
		t.Errorf("expected ErrNoAnswers, got %v", err)
	}
}

func TestSetBio_CreatesRecordAndKeepsAnswers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	svc := newTestAnswerService(repo)

	if err := svc.SetBio(ctx, "u1", "  about me  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bio, err := svc.Bio(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bio != "about me" {
		t.Errorf("expected bio 'about me', got %q", bio)
	}

	if err := svc.ContinueRegistration(ctx, "u1", model.AnswerSet{"sleep": "late"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetBio(ctx, "u1", "changed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.data["u1"]["sleep"] != "late" {
		t.Error("expected answers to survive a bio edit")
	}
}

func TestSetBio_TooLong(t *testing.T) {
	t.Parallel()

	svc := newTestAnswerService(newMemAnswerRepo())
	err := svc.SetBio(context.Background(), "u1", strings.Repeat("b", model.MaxBioLength+1))
	if !errors.Is(err, ErrBioTooLong) {
		t.Errorf("expected ErrBioTooLong, got %v", err)
	}
}

func TestClear_RemovesEverything(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newMemAnswerRepo()
	repo.data["u1"] = model.AnswerSet{"sleep": "late", model.BioKey: "hi"}
	svc := newTestAnswerService(repo)

	if err := svc.Clear(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ua, _ := svc.Get(ctx, "u1")
	if ua != nil {
		t.Errorf("expected no record, got %v", ua)
	}
}

// ============================================================================
// Search Tests
// ============================================================================

func TestSearch_CaseInsensitiveSorted(t *testing.T) {
	t.Parallel()

	repo := newMemAnswerRepo()
	repo.data["u3"] = model.AnswerSet{"pet": "Cat"}
	repo.data["u1"] = model.AnswerSet{"pet": "cat"}
	repo.data["u2"] = model.AnswerSet{"pet": "dog"}
	repo.data["u4"] = model.AnswerSet{"sleep": "cat"}
	svc := newTestAnswerService(repo)

	got, err := svc.Search(context.Background(), "pet", "CAT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(got) != "[u1 u3]" {
		t.Errorf("expected [u1 u3], got %v", got)
	}
}

func TestSearch_RequiresArguments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAnswerService(newMemAnswerRepo())
	if _, err := svc.Search(ctx, "", "cat"); !errors.Is(err, ErrSearchKeyRequired) {
		t.Errorf("expected ErrSearchKeyRequired, got %v", err)
	}
	if _, err := svc.Search(ctx, "pet", "  "); !errors.Is(err, ErrSearchValueRequired) {
		t.Errorf("expected ErrSearchValueRequired, got %v", err)
	}
}
