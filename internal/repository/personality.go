package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// PersonalityRepository handles imported personality test results
type PersonalityRepository struct {
	db database.Database
}

// NewPersonalityRepository creates a new personality repository
func NewPersonalityRepository(db database.Database) *PersonalityRepository {
	return &PersonalityRepository{db: db}
}

// Get retrieves the personality profile of a user
func (r *PersonalityRepository) Get(ctx context.Context, userID string) (*model.UserPersonality, error) {
	query := `SELECT * FROM type::thing('personality', $user_id)`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get personality: %w", err)
	}

	row, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return parseUserPersonality(row)
}

// List returns every stored personality profile
func (r *PersonalityRepository) List(ctx context.Context) ([]*model.UserPersonality, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM personality ORDER BY user_id`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list personality profiles: %w", err)
	}

	rows := resultRows(result)
	out := make([]*model.UserPersonality, 0, len(rows))
	for _, row := range rows {
		up, err := parseUserPersonality(row)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, nil
}

// Put overwrites the personality profile of a user
func (r *PersonalityRepository) Put(ctx context.Context, userID string, profile model.PersonalityProfile) error {
	data, err := encodeJSON(profile)
	if err != nil {
		return err
	}

	query := `UPSERT type::thing('personality', $user_id) CONTENT { user_id: $user_id, data: $data, updated_on: time::now() }`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID, "data": data}); err != nil {
		return fmt.Errorf("failed to save personality: %w", err)
	}
	return nil
}

// Delete removes the personality profile of a user
func (r *PersonalityRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE type::thing('personality', $user_id)`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete personality: %w", err)
	}
	return nil
}

func parseUserPersonality(m map[string]interface{}) (*model.UserPersonality, error) {
	profile := model.PersonalityProfile{}
	if err := decodeJSON(getString(m, "data"), &profile); err != nil {
		return nil, err
	}
	return &model.UserPersonality{
		UserID:    getString(m, "user_id"),
		Profile:   profile,
		UpdatedOn: getTime(m, "updated_on"),
	}, nil
}
