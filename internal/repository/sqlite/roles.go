package sqlite

import (
	"context"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// RoleCompatibilityStore persists the directional role bonus table.
type RoleCompatibilityStore struct {
	s *Store
}

// Upsert sets the bonus of one ordered role pair.
func (r *RoleCompatibilityStore) Upsert(ctx context.Context, entry *model.RoleCompatibility) error {
	if err := r.s.ready(ctx); err != nil {
		return err
	}
	now := r.s.now().UTC()
	_, err := r.s.sqlDB.ExecContext(ctx,
		`INSERT INTO role_compatibility (role_from, role_to, score, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(role_from, role_to) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		entry.From, entry.To, entry.Score, toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("upsert role compatibility: %w", err)
	}
	entry.UpdatedOn = now
	return nil
}

// List returns every configured pair.
func (r *RoleCompatibilityStore) List(ctx context.Context) ([]*model.RoleCompatibility, error) {
	if err := r.s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := r.s.sqlDB.QueryContext(ctx, `SELECT role_from, role_to, score, updated_at FROM role_compatibility ORDER BY role_from, role_to`)
	if err != nil {
		return nil, fmt.Errorf("list role compatibility: %w", err)
	}
	defer rows.Close()

	var out []*model.RoleCompatibility
	for rows.Next() {
		var (
			entry   model.RoleCompatibility
			updated int64
		)
		if err := rows.Scan(&entry.From, &entry.To, &entry.Score, &updated); err != nil {
			return nil, fmt.Errorf("scan role compatibility: %w", err)
		}
		entry.UpdatedOn = fromMillis(updated)
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role compatibility: %w", err)
	}
	return out, nil
}

// RoleTagStore persists gender and orientation role labels.
type RoleTagStore struct {
	s *Store
}

// Upsert sets the label of a role for one tag kind.
func (r *RoleTagStore) Upsert(ctx context.Context, tag *model.RoleTag) error {
	if err := r.s.ready(ctx); err != nil {
		return err
	}
	now := r.s.now().UTC()
	_, err := r.s.sqlDB.ExecContext(ctx,
		`INSERT INTO role_tags (kind, role_id, label, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(kind, role_id) DO UPDATE SET label = excluded.label, updated_at = excluded.updated_at`,
		string(tag.Kind), tag.RoleID, tag.Label, toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("upsert role tag: %w", err)
	}
	tag.UpdatedOn = now
	return nil
}

// ListByKind returns every tag of one kind.
func (r *RoleTagStore) ListByKind(ctx context.Context, kind model.RoleTagKind) ([]*model.RoleTag, error) {
	if err := r.s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := r.s.sqlDB.QueryContext(ctx,
		`SELECT kind, role_id, label, updated_at FROM role_tags WHERE kind = ? ORDER BY role_id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list role tags: %w", err)
	}
	defer rows.Close()

	var out []*model.RoleTag
	for rows.Next() {
		var (
			tag     model.RoleTag
			k       string
			updated int64
		)
		if err := rows.Scan(&k, &tag.RoleID, &tag.Label, &updated); err != nil {
			return nil, fmt.Errorf("scan role tag: %w", err)
		}
		tag.Kind = model.RoleTagKind(k)
		tag.UpdatedOn = fromMillis(updated)
		out = append(out, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role tags: %w", err)
	}
	return out, nil
}
