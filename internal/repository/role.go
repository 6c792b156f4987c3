package repository

import (
	"context"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// RoleCompatibilityRepository handles the directional role bonus table
type RoleCompatibilityRepository struct {
	db database.Database
}

// NewRoleCompatibilityRepository creates a new role compatibility repository
func NewRoleCompatibilityRepository(db database.Database) *RoleCompatibilityRepository {
	return &RoleCompatibilityRepository{db: db}
}

// Upsert sets the bonus of one ordered role pair
func (r *RoleCompatibilityRepository) Upsert(ctx context.Context, entry *model.RoleCompatibility) error {
	query := `
		UPSERT type::thing('role_compatibility', [$role_from, $role_to]) CONTENT {
			role_from: $role_from,
			role_to: $role_to,
			score: <float> $score,
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"role_from": entry.From,
		"role_to":   entry.To,
		"score":     entry.Score,
	}
	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to save role compatibility: %w", err)
	}
	return nil
}

// List returns every configured pair
func (r *RoleCompatibilityRepository) List(ctx context.Context) ([]*model.RoleCompatibility, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM role_compatibility ORDER BY role_from, role_to`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list role compatibility: %w", err)
	}

	rows := resultRows(result)
	out := make([]*model.RoleCompatibility, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.RoleCompatibility{
			From:      getString(row, "role_from"),
			To:        getString(row, "role_to"),
			Score:     getFloat(row, "score"),
			UpdatedOn: getTime(row, "updated_on"),
		})
	}
	return out, nil
}

// RoleTagRepository handles gender and orientation role labels
type RoleTagRepository struct {
	db database.Database
}

// NewRoleTagRepository creates a new role tag repository
func NewRoleTagRepository(db database.Database) *RoleTagRepository {
	return &RoleTagRepository{db: db}
}

// Upsert sets the label of a role for one tag kind
func (r *RoleTagRepository) Upsert(ctx context.Context, tag *model.RoleTag) error {
	query := `
		UPSERT type::thing('role_tag', [$kind, $role_id]) CONTENT {
			kind: $kind,
			role_id: $role_id,
			label: $label,
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"kind":    string(tag.Kind),
		"role_id": tag.RoleID,
		"label":   tag.Label,
	}
	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to save role tag: %w", err)
	}
	return nil
}

// ListByKind returns every tag of one kind
func (r *RoleTagRepository) ListByKind(ctx context.Context, kind model.RoleTagKind) ([]*model.RoleTag, error) {
	query := `SELECT * FROM role_tag WHERE kind = $kind ORDER BY role_id`

	result, err := r.db.Query(ctx, query, map[string]interface{}{"kind": string(kind)})
	if err != nil {
		return nil, fmt.Errorf("failed to list role tags: %w", err)
	}

	rows := resultRows(result)
	out := make([]*model.RoleTag, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.RoleTag{
			Kind:      model.RoleTagKind(getString(row, "kind")),
			RoleID:    getString(row, "role_id"),
			Label:     getString(row, "label"),
			UpdatedOn: getTime(row, "updated_on"),
		})
	}
	return out, nil
}
