package service

import (
	"context"
	"fmt"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// PersonalityRepository defines the interface for personality profile storage
type PersonalityRepository interface {
	Get(ctx context.Context, userID string) (*model.UserPersonality, error)
	List(ctx context.Context) ([]*model.UserPersonality, error)
	Put(ctx context.Context, userID string, profile model.PersonalityProfile) error
	Delete(ctx context.Context, userID string) error
}

// PersonalityService handles personality test imports
type PersonalityService struct {
	repo  PersonalityRepository
	locks *KeyedMutex
}

// PersonalityServiceConfig holds configuration for the personality service
type PersonalityServiceConfig struct {
	Repo  PersonalityRepository
	Locks *KeyedMutex
}

// NewPersonalityService creates a new personality service
func NewPersonalityService(cfg PersonalityServiceConfig) *PersonalityService {
	if cfg.Locks == nil {
		cfg.Locks = NewKeyedMutex()
	}
	return &PersonalityService{repo: cfg.Repo, locks: cfg.Locks}
}

// Import parses "<percent>% <trait>" lines and overwrites the stored profile.
// Input without a single valid line is rejected and leaves the old profile.
func (s *PersonalityService) Import(ctx context.Context, userID, raw string) (model.PersonalityProfile, error) {
	profile := model.ParsePersonalityProfile(raw)
	if len(profile) == 0 {
		return nil, ErrInvalidPersonality
	}

	unlock := s.locks.Lock("personality:" + userID)
	defer unlock()

	if err := s.repo.Put(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("save personality: %w", err)
	}
	return profile, nil
}

// Get returns the stored profile, or nil when none exists
func (s *PersonalityService) Get(ctx context.Context, userID string) (model.PersonalityProfile, error) {
	up, err := s.repo.Get(ctx, userID)
	if err != nil || up == nil {
		return nil, err
	}
	return up.Profile, nil
}

// Formatted renders the stored profile back into importable lines
func (s *PersonalityService) Formatted(ctx context.Context, userID string) (string, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.Format(), nil
}

// Clear deletes the stored profile
func (s *PersonalityService) Clear(ctx context.Context, userID string) error {
	unlock := s.locks.Lock("personality:" + userID)
	defer unlock()
	return s.repo.Delete(ctx, userID)
}
