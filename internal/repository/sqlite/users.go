package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// AnswerStore persists one survey answer map per user.
type AnswerStore struct {
	s *Store
}

// Get returns the answers of a user, or nil when none are stored.
func (a *AnswerStore) Get(ctx context.Context, userID string) (*model.UserAnswers, error) {
	var out model.UserAnswers
	found, err := a.s.getDocument(ctx, "answers", userID, &out.Answers, &out.UpdatedOn)
	if err != nil || !found {
		return nil, err
	}
	out.UserID = userID
	if out.Answers == nil {
		out.Answers = model.AnswerSet{}
	}
	return &out, nil
}

// List returns the answers of every user ordered by user ID.
func (a *AnswerStore) List(ctx context.Context) ([]*model.UserAnswers, error) {
	var out []*model.UserAnswers
	err := a.s.listDocuments(ctx, "answers", func(userID string, data []byte, updated int64) error {
		answers := model.AnswerSet{}
		if err := json.Unmarshal(data, &answers); err != nil {
			return fmt.Errorf("decode answers of %s: %w", userID, err)
		}
		out = append(out, &model.UserAnswers{UserID: userID, Answers: answers, UpdatedOn: fromMillis(updated)})
		return nil
	})
	return out, err
}

// Put overwrites the answers of a user.
func (a *AnswerStore) Put(ctx context.Context, userID string, answers model.AnswerSet) error {
	return a.s.putDocument(ctx, "answers", userID, answers)
}

// Delete removes the answers of a user.
func (a *AnswerStore) Delete(ctx context.Context, userID string) error {
	return a.s.deleteDocument(ctx, "answers", userID)
}

// PersonalityStore persists one personality profile per user.
type PersonalityStore struct {
	s *Store
}

// Get returns the personality profile of a user, or nil when none is stored.
func (p *PersonalityStore) Get(ctx context.Context, userID string) (*model.UserPersonality, error) {
	var out model.UserPersonality
	found, err := p.s.getDocument(ctx, "personality", userID, &out.Profile, &out.UpdatedOn)
	if err != nil || !found {
		return nil, err
	}
	out.UserID = userID
	if out.Profile == nil {
		out.Profile = model.PersonalityProfile{}
	}
	return &out, nil
}

// List returns every stored personality profile ordered by user ID.
func (p *PersonalityStore) List(ctx context.Context) ([]*model.UserPersonality, error) {
	var out []*model.UserPersonality
	err := p.s.listDocuments(ctx, "personality", func(userID string, data []byte, updated int64) error {
		profile := model.PersonalityProfile{}
		if err := json.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("decode personality of %s: %w", userID, err)
		}
		out = append(out, &model.UserPersonality{UserID: userID, Profile: profile, UpdatedOn: fromMillis(updated)})
		return nil
	})
	return out, err
}

// Put overwrites the personality profile of a user.
func (p *PersonalityStore) Put(ctx context.Context, userID string, profile model.PersonalityProfile) error {
	return p.s.putDocument(ctx, "personality", userID, profile)
}

// Delete removes the personality profile of a user.
func (p *PersonalityStore) Delete(ctx context.Context, userID string) error {
	return p.s.deleteDocument(ctx, "personality", userID)
}

// table is always one of the constant table names above.
func (s *Store) getDocument(ctx context.Context, table, userID string, dst any, updatedOn *time.Time) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	var (
		data    string
		updated int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data, updated_at FROM `+table+` WHERE user_id = ?`, userID).Scan(&data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", table, err)
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", table, err)
	}
	*updatedOn = fromMillis(updated)
	return true, nil
}

func (s *Store) listDocuments(ctx context.Context, table string, fn func(userID string, data []byte, updated int64) error) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT user_id, data, updated_at FROM `+table+` ORDER BY user_id`)
	if err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID, data string
			updated      int64
		)
		if err := rows.Scan(&userID, &data, &updated); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		if err := fn(userID, []byte(data), updated); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}

func (s *Store) putDocument(ctx context.Context, table, userID string, value any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", table, err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

func (s *Store) deleteDocument(ctx context.Context, table, userID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
