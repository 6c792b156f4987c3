package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockQuestionRepo struct {
	listFunc         func(ctx context.Context) ([]*model.Question, error)
	getFunc          func(ctx context.Context, key string) (*model.Question, error)
	createFunc       func(ctx context.Context, q *model.Question) error
	updatePromptFunc func(ctx context.Context, key, prompt string) error
	deleteFunc       func(ctx context.Context, key string) error
}

func (m *mockQuestionRepo) List(ctx context.Context) ([]*model.Question, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockQuestionRepo) Get(ctx context.Context, key string) (*model.Question, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, q)
	}
	return nil
}

func (m *mockQuestionRepo) UpdatePrompt(ctx context.Context, key, prompt string) error {
	if m.updatePromptFunc != nil {
		return m.updatePromptFunc(ctx, key, prompt)
	}
	return nil
}

func (m *mockQuestionRepo) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// questionsOf returns a question repo serving a fixed survey
func questionsOf(questions ...*model.Question) *mockQuestionRepo {
	return &mockQuestionRepo{
		listFunc: func(ctx context.Context) ([]*model.Question, error) {
			return questions, nil
		},
		getFunc: func(ctx context.Context, key string) (*model.Question, error) {
			for _, q := range questions {
				if q.Key == key {
					copied := *q
					return &copied, nil
				}
			}
			return nil, nil
		},
	}
}

// memAnswerRepo is a map-backed AnswerRepository
type memAnswerRepo struct {
	mu      sync.Mutex
	data    map[string]model.AnswerSet
	listErr error
	putErr  error
}

func newMemAnswerRepo() *memAnswerRepo {
	return &memAnswerRepo{data: make(map[string]model.AnswerSet)}
}

func (m *memAnswerRepo) Get(ctx context.Context, userID string) (*model.UserAnswers, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.data[userID]
	if !ok {
		return nil, nil
	}
	return &model.UserAnswers{UserID: userID, Answers: a.Clone()}, nil
}

func (m *memAnswerRepo) List(ctx context.Context) ([]*model.UserAnswers, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*model.UserAnswers, 0, len(ids))
	for _, id := range ids {
		out = append(out, &model.UserAnswers{UserID: id, Answers: m.data[id].Clone()})
	}
	return out, nil
}

func (m *memAnswerRepo) Put(ctx context.Context, userID string, answers model.AnswerSet) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = answers.Clone()
	return nil
}

func (m *memAnswerRepo) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

// memPersonalityRepo is a map-backed PersonalityRepository
type memPersonalityRepo struct {
	mu   sync.Mutex
	data map[string]model.PersonalityProfile
}

func newMemPersonalityRepo() *memPersonalityRepo {
	return &memPersonalityRepo{data: make(map[string]model.PersonalityProfile)}
}

func (m *memPersonalityRepo) Get(ctx context.Context, userID string) (*model.UserPersonality, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[userID]
	if !ok {
		return nil, nil
	}
	return &model.UserPersonality{UserID: userID, Profile: p}, nil
}

func (m *memPersonalityRepo) List(ctx context.Context) ([]*model.UserPersonality, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.UserPersonality, 0, len(m.data))
	for id, p := range m.data {
		out = append(out, &model.UserPersonality{UserID: id, Profile: p})
	}
	return out, nil
}

func (m *memPersonalityRepo) Put(ctx context.Context, userID string, profile model.PersonalityProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = profile
	return nil
}

func (m *memPersonalityRepo) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

type mockRoleCompatibilityRepo struct {
	entries []*model.RoleCompatibility
	err     error
}

func (m *mockRoleCompatibilityRepo) Upsert(ctx context.Context, entry *model.RoleCompatibility) error {
	if m.err != nil {
		return m.err
	}
	for _, e := range m.entries {
		if e.From == entry.From && e.To == entry.To {
			e.Score = entry.Score
			return nil
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRoleCompatibilityRepo) List(ctx context.Context) ([]*model.RoleCompatibility, error) {
	return m.entries, m.err
}

type mockRoleTagRepo struct {
	tags []*model.RoleTag
}

func (m *mockRoleTagRepo) Upsert(ctx context.Context, tag *model.RoleTag) error {
	for _, t := range m.tags {
		if t.Kind == tag.Kind && t.RoleID == tag.RoleID {
			t.Label = tag.Label
			return nil
		}
	}
	m.tags = append(m.tags, tag)
	return nil
}

func (m *mockRoleTagRepo) ListByKind(ctx context.Context, kind model.RoleTagKind) ([]*model.RoleTag, error) {
	var out []*model.RoleTag
	for _, t := range m.tags {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockMemberDirectory struct {
	memberFunc func(ctx context.Context, guildID, userID string) (*model.Member, error)
}

func (m *mockMemberDirectory) Member(ctx context.Context, guildID, userID string) (*model.Member, error) {
	if m.memberFunc != nil {
		return m.memberFunc(ctx, guildID, userID)
	}
	return &model.Member{UserID: userID, GuildID: guildID}, nil
}

type mockMemberLister struct {
	mockMemberDirectory
	roster    []*model.Member
	listErr   error
	lookups   atomic.Int32
	listCalls atomic.Int32
}

func (m *mockMemberLister) Members(ctx context.Context, guildID string) ([]*model.Member, error) {
	m.listCalls.Add(1)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.roster, nil
}

type notification struct {
	recipientID, originID, candidateID string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []notification
	err  error
}

func (m *mockNotifier) NotifyMatch(ctx context.Context, recipientID, originID, candidateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, notification{recipientID, originID, candidateID})
	return m.err
}

var errBoom = database.ErrConnection

func question(key string, kind model.QuestionKind, mode model.MatchMode, weight float64) *model.Question {
	return &model.Question{Key: key, Prompt: "Prompt " + key, Kind: kind, Mode: mode, Weight: weight}
}
