package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// QuestionStore persists survey questions.
type QuestionStore struct {
	s *Store
}

const questionColumns = `key, prompt, kind, mode, weight, choices, created_at, updated_at`

// choiceSeparator joins stored choices. Choices are parsed from comma
// separated input, so they never contain a newline.
const choiceSeparator = "\n"

// List returns every question in creation order.
func (q *QuestionStore) List(ctx context.Context) ([]*model.Question, error) {
	if err := q.s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := q.s.sqlDB.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY created_at, key`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// Get returns one question by key, or nil when it does not exist.
func (q *QuestionStore) Get(ctx context.Context, key string) (*model.Question, error) {
	if err := q.s.ready(ctx); err != nil {
		return nil, err
	}
	row := q.s.sqlDB.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE key = ?`, key)
	question, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Create inserts one question. A taken key yields database.ErrDuplicate.
func (q *QuestionStore) Create(ctx context.Context, question *model.Question) error {
	if err := q.s.ready(ctx); err != nil {
		return err
	}
	now := q.s.now().UTC()
	_, err := q.s.sqlDB.ExecContext(ctx,
		`INSERT INTO questions (`+questionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		question.Key,
		question.Prompt,
		string(question.Kind),
		string(question.Mode),
		question.Weight,
		strings.Join(question.Choices, choiceSeparator),
		toMillis(now),
		toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("question %q: %w", question.Key, database.ErrDuplicate)
		}
		return fmt.Errorf("create question: %w", err)
	}
	question.CreatedOn = now
	question.UpdatedOn = now
	return nil
}

// UpdatePrompt replaces the prompt of an existing question.
func (q *QuestionStore) UpdatePrompt(ctx context.Context, key, prompt string) error {
	if err := q.s.ready(ctx); err != nil {
		return err
	}
	res, err := q.s.sqlDB.ExecContext(ctx,
		`UPDATE questions SET prompt = ?, updated_at = ? WHERE key = ?`,
		prompt, toMillis(q.s.now()), key,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return requireAffected(res)
}

// Delete removes one question.
func (q *QuestionStore) Delete(ctx context.Context, key string) error {
	if err := q.s.ready(ctx); err != nil {
		return err
	}
	res, err := q.s.sqlDB.ExecContext(ctx, `DELETE FROM questions WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*model.Question, error) {
	var (
		question         model.Question
		kind, mode       string
		choices          string
		created, updated int64
	)
	if err := row.Scan(&question.Key, &question.Prompt, &kind, &mode, &question.Weight, &choices, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan question: %w", err)
	}
	question.Kind = model.QuestionKind(kind)
	question.Mode = model.MatchMode(mode)
	if choices != "" {
		question.Choices = strings.Split(choices, choiceSeparator)
	}
	question.CreatedOn = fromMillis(created)
	question.UpdatedOn = fromMillis(updated)
	return &question, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}
