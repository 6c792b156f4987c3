package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// AnswerRepository handles per-user survey answers
type AnswerRepository struct {
	db database.Database
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db database.Database) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Get retrieves the answer set of a user
func (r *AnswerRepository) Get(ctx context.Context, userID string) (*model.UserAnswers, error) {
	query := `SELECT * FROM type::thing('answers', $user_id)`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	row, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return parseUserAnswers(row)
}

// List returns the answer sets of every user
func (r *AnswerRepository) List(ctx context.Context) ([]*model.UserAnswers, error) {
	query := `SELECT * FROM answers ORDER BY user_id`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	rows := resultRows(result)
	out := make([]*model.UserAnswers, 0, len(rows))
	for _, row := range rows {
		ua, err := parseUserAnswers(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ua)
	}
	return out, nil
}

// Put overwrites the answer set of a user
func (r *AnswerRepository) Put(ctx context.Context, userID string, answers model.AnswerSet) error {
	data, err := encodeJSON(answers)
	if err != nil {
		return err
	}

	query := `UPSERT type::thing('answers', $user_id) CONTENT { user_id: $user_id, data: $data, updated_on: time::now() }`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID, "data": data}); err != nil {
		return fmt.Errorf("failed to save answers: %w", err)
	}
	return nil
}

// Delete removes the answer set of a user. Missing records are not an error.
func (r *AnswerRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE type::thing('answers', $user_id)`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	return nil
}

func parseUserAnswers(m map[string]interface{}) (*model.UserAnswers, error) {
	answers := model.AnswerSet{}
	if err := decodeJSON(getString(m, "data"), &answers); err != nil {
		return nil, err
	}
	return &model.UserAnswers{
		UserID:    getString(m, "user_id"),
		Answers:   answers,
		UpdatedOn: getTime(m, "updated_on"),
	}, nil
}
