package service

import (
	"context"

	"github.com/Sakemo/matchmake-bot/internal/model"
)

// ProfileService assembles the profile view of a member
type ProfileService struct {
	answers     AnswerRepository
	personality PersonalityRepository
	roles       *RoleCatalogService
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	Answers     AnswerRepository
	Personality PersonalityRepository
	Roles       *RoleCatalogService
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	return &ProfileService{
		answers:     cfg.Answers,
		personality: cfg.Personality,
		roles:       cfg.Roles,
	}
}

// Build collects bio, answers, personality and role labels of member.
// Missing records leave the corresponding fields empty.
func (s *ProfileService) Build(ctx context.Context, member *model.Member) (*model.Profile, error) {
	if member == nil {
		return nil, ErrMemberNotFound
	}
	profile := &model.Profile{Member: member}

	ua, err := s.answers.Get(ctx, member.UserID)
	if err != nil {
		return nil, err
	}
	if ua != nil {
		profile.Bio = ua.Answers.Bio()
		profile.Answers = ua.Answers
	}

	up, err := s.personality.Get(ctx, member.UserID)
	if err != nil {
		return nil, err
	}
	if up != nil {
		profile.Personality = up.Profile
	}

	if profile.Genders, err = s.roles.Labels(ctx, model.RoleTagGender, member.Roles); err != nil {
		return nil, err
	}
	if profile.Orientations, err = s.roles.Labels(ctx, model.RoleTagOrientation, member.Roles); err != nil {
		return nil, err
	}
	return profile, nil
}
