package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// QuestionRepository handles survey question data access
type QuestionRepository struct {
	db database.Database
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.Database) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns every question in creation order
func (r *QuestionRepository) List(ctx context.Context) ([]*model.Question, error) {
	query := `SELECT * FROM question ORDER BY created_on, key`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	rows := resultRows(result)
	questions := make([]*model.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, parseQuestion(row))
	}
	return questions, nil
}

// Get retrieves a question by key
func (r *QuestionRepository) Get(ctx context.Context, key string) (*model.Question, error) {
	query := `SELECT * FROM type::thing('question', $key)`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"key": key})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	row, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return parseQuestion(row), nil
}

// Create inserts a question. A taken key yields database.ErrDuplicate.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	// Optional fields are only set when present to avoid NULL vs NONE issues
	setClause := `key = $key, prompt = $prompt, kind = $kind, mode = $mode, weight = <float> $weight, created_on = time::now(), updated_on = time::now()`
	vars := map[string]interface{}{
		"key":    q.Key,
		"prompt": q.Prompt,
		"kind":   string(q.Kind),
		"mode":   string(q.Mode),
		"weight": q.Weight,
	}
	if len(q.Choices) > 0 {
		setClause += ", choices = $choices"
		vars["choices"] = q.Choices
	}

	query := "CREATE type::thing('question', $key) SET " + setClause

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("question %q: %w", q.Key, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create question: %w", err)
	}

	if rows := resultRows(result); len(rows) > 0 {
		q.CreatedOn = getTime(rows[0], "created_on")
		q.UpdatedOn = getTime(rows[0], "updated_on")
	}
	return nil
}

// UpdatePrompt replaces the prompt of an existing question
func (r *QuestionRepository) UpdatePrompt(ctx context.Context, key, prompt string) error {
	query := `UPDATE type::thing('question', $key) SET prompt = $prompt, updated_on = time::now() RETURN AFTER`

	result, err := r.db.Query(ctx, query, map[string]interface{}{"key": key, "prompt": prompt})
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if len(resultRows(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a question by key
func (r *QuestionRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE type::thing('question', $key) RETURN BEFORE`

	result, err := r.db.Query(ctx, query, map[string]interface{}{"key": key})
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if len(resultRows(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func parseQuestion(m map[string]interface{}) *model.Question {
	return &model.Question{
		Key:       getString(m, "key"),
		Prompt:    getString(m, "prompt"),
		Kind:      model.QuestionKind(getString(m, "kind")),
		Mode:      model.MatchMode(getString(m, "mode")),
		Weight:    getFloat(m, "weight"),
		Choices:   getStringSlice(m, "choices"),
		CreatedOn: getTime(m, "created_on"),
		UpdatedOn: getTime(m, "updated_on"),
	}
}
