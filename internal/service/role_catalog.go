package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// RoleCompatibilityRepository defines the interface for role bonus storage
type RoleCompatibilityRepository interface {
	Upsert(ctx context.Context, entry *model.RoleCompatibility) error
	List(ctx context.Context) ([]*model.RoleCompatibility, error)
}

// RoleTagRepository defines the interface for gender/orientation role tags
type RoleTagRepository interface {
	Upsert(ctx context.Context, tag *model.RoleTag) error
	ListByKind(ctx context.Context, kind model.RoleTagKind) ([]*model.RoleTag, error)
}

// RoleCatalogService manages role compatibility bonuses and role tags
type RoleCatalogService struct {
	compat RoleCompatibilityRepository
	tags   RoleTagRepository
}

// RoleCatalogServiceConfig holds configuration for the role catalog service
type RoleCatalogServiceConfig struct {
	Compatibility RoleCompatibilityRepository
	Tags          RoleTagRepository
}

// NewRoleCatalogService creates a new role catalog service
func NewRoleCatalogService(cfg RoleCatalogServiceConfig) *RoleCatalogService {
	return &RoleCatalogService{compat: cfg.Compatibility, tags: cfg.Tags}
}

// SetCompatibility upserts the bonus for the ordered pair (from, to)
func (s *RoleCatalogService) SetCompatibility(ctx context.Context, from, to string, score float64) (*model.RoleCompatibility, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, ErrRoleRequired
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, ErrInvalidScore
	}

	entry := &model.RoleCompatibility{From: from, To: to, Score: score}
	if err := s.compat.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("save role compatibility: %w", err)
	}
	return entry, nil
}

// Table loads every bonus in lookup form
func (s *RoleCatalogService) Table(ctx context.Context) (model.RoleCompatibilityTable, error) {
	entries, err := s.compat.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewRoleCompatibilityTable(entries), nil
}

// TagRole labels a role with a gender or orientation, replacing any
// previous label of the same kind
func (s *RoleCatalogService) TagRole(ctx context.Context, kind model.RoleTagKind, roleID, label string) (*model.RoleTag, error) {
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return nil, ErrRoleRequired
	}
	if !model.IsValidRoleTag(kind, label) {
		return nil, ErrInvalidRoleTag
	}

	tag := &model.RoleTag{Kind: kind, RoleID: roleID, Label: label}
	if err := s.tags.Upsert(ctx, tag); err != nil {
		return nil, fmt.Errorf("save role tag: %w", err)
	}
	return tag, nil
}

// Labels returns the sorted, distinct labels of kind carried by roleIDs
func (s *RoleCatalogService) Labels(ctx context.Context, kind model.RoleTagKind, roleIDs []string) ([]string, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	tags, err := s.tags.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	held := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		held[id] = true
	}
	seen := make(map[string]bool)
	var labels []string
	for _, t := range tags {
		if held[t.RoleID] && !seen[t.Label] {
			seen[t.Label] = true
			labels = append(labels, t.Label)
		}
	}
	sort.Strings(labels)
	return labels, nil
}
