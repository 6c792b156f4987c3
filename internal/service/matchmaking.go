package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/scoring"
	"github.com/Sakemo/matchmake-bot/internal/session"
)

// defaultLookupConcurrency bounds parallel member lookups against the platform
const defaultLookupConcurrency = 8

// MemberDirectory resolves community members through the chat platform.
// Member returns (nil, nil) for users who are not in the guild.
type MemberDirectory interface {
	Member(ctx context.Context, guildID, userID string) (*model.Member, error)
}

// MemberLister is implemented by directories that can return a whole guild
// in a few paged calls. Rank prefers it over one lookup per member.
type MemberLister interface {
	Members(ctx context.Context, guildID string) ([]*model.Member, error)
}

// Notifier delivers match announcements outside the browse flow
type Notifier interface {
	NotifyMatch(ctx context.Context, recipientID, originID, candidateID string) error
}

// MatchmakingService scores members against each other and drives the
// accept/reject browse flow
type MatchmakingService struct {
	answers     AnswerRepository
	personality PersonalityRepository
	questions   QuestionRepository
	roles       *RoleCatalogService
	members     MemberDirectory
	sessions    session.Store
	notifier    Notifier
	logger      *zap.Logger
	locks       *KeyedMutex
	concurrency int
	now         func() time.Time
	newID       func() string
}

// MatchmakingServiceConfig holds configuration for the matchmaking service
type MatchmakingServiceConfig struct {
	Answers     AnswerRepository
	Personality PersonalityRepository
	Questions   QuestionRepository
	Roles       *RoleCatalogService
	Members     MemberDirectory
	Sessions    session.Store
	Notifier    Notifier
	Logger      *zap.Logger
	// Concurrency caps parallel member lookups (default 8)
	Concurrency int
	Now         func() time.Time
	NewID       func() string
}

// NewMatchmakingService creates a new matchmaking service
func NewMatchmakingService(cfg MatchmakingServiceConfig) *MatchmakingService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultLookupConcurrency
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &MatchmakingService{
		answers:     cfg.Answers,
		personality: cfg.Personality,
		questions:   cfg.Questions,
		roles:       cfg.Roles,
		members:     cfg.Members,
		sessions:    cfg.Sessions,
		notifier:    cfg.Notifier,
		logger:      cfg.Logger,
		locks:       NewKeyedMutex(),
		concurrency: cfg.Concurrency,
		now:         cfg.Now,
		newID:       cfg.NewID,
	}
}

// Start scores every other registered member of origin's guild and opens a
// browse flow positioned at the best candidate
func (s *MatchmakingService) Start(ctx context.Context, origin *model.Member) (*model.MatchSession, error) {
	if origin == nil {
		return nil, ErrMemberNotFound
	}

	own, err := s.answers.Get(ctx, origin.UserID)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return nil, ErrNoAnswers
	}

	candidates, err := s.Rank(ctx, origin, own.Answers)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sess := &model.MatchSession{
		ID:         s.newID(),
		GuildID:    origin.GuildID,
		OriginID:   origin.UserID,
		Candidates: candidates,
		CreatedOn:  s.now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("matchmaking session opened",
		zap.String("session_id", sess.ID),
		zap.String("user_id", origin.UserID),
		zap.Int("candidates", len(candidates)),
	)
	return sess, nil
}

// Rank returns every other guild member with answers, sorted by descending
// score. Ties keep ascending user ID order.
func (s *MatchmakingService) Rank(ctx context.Context, origin *model.Member, own model.AnswerSet) ([]model.Candidate, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	table, err := s.roles.Table(ctx)
	if err != nil {
		return nil, err
	}
	everyone, err := s.answers.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := s.personalityIndex(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := s.roster(ctx, origin.GuildID)
	if err != nil {
		return nil, err
	}

	self := scoring.Input{
		Answers:     own,
		Personality: profiles[origin.UserID],
		Roles:       origin.Roles,
	}

	var (
		mu         sync.Mutex
		candidates []model.Candidate
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for _, ua := range everyone {
		if ua.UserID == origin.UserID {
			continue
		}
		if roster != nil {
			member, ok := roster[ua.UserID]
			if !ok {
				continue
			}
			other := scoring.Input{
				Answers:     ua.Answers,
				Personality: profiles[ua.UserID],
				Roles:       member.Roles,
			}
			candidates = append(candidates, model.Candidate{UserID: ua.UserID, Score: scoring.ScoreTotal(self, other, questions, table)})
			continue
		}
		eg.Go(func() error {
			member, err := s.members.Member(egCtx, origin.GuildID, ua.UserID)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.logger.Warn("member lookup failed",
					zap.String("user_id", ua.UserID),
					zap.String("guild_id", origin.GuildID),
					zap.Error(err),
				)
				return nil
			}
			if member == nil {
				return nil
			}

			other := scoring.Input{
				Answers:     ua.Answers,
				Personality: profiles[ua.UserID],
				Roles:       member.Roles,
			}
			score := scoring.ScoreTotal(self, other, questions, table)

			mu.Lock()
			candidates = append(candidates, model.Candidate{UserID: ua.UserID, Score: score})
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].UserID < candidates[j].UserID
	})
	return candidates, nil
}

// roster indexes the guild by user ID when the directory can list it. A nil
// map means the caller falls back to per-member lookups.
func (s *MatchmakingService) roster(ctx context.Context, guildID string) (map[string]*model.Member, error) {
	lister, ok := s.members.(MemberLister)
	if !ok {
		return nil, nil
	}
	members, err := lister.Members(ctx, guildID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Warn("guild member listing failed, looking members up one by one",
			zap.String("guild_id", guildID),
			zap.Error(err),
		)
		return nil, nil
	}
	index := make(map[string]*model.Member, len(members))
	for _, m := range members {
		if m != nil {
			index[m.UserID] = m
		}
	}
	return index, nil
}

func (s *MatchmakingService) personalityIndex(ctx context.Context) (map[string]model.PersonalityProfile, error) {
	all, err := s.personality.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]model.PersonalityProfile, len(all))
	for _, up := range all {
		index[up.UserID] = up.Profile
	}
	return index, nil
}

// Session returns an open browse flow
func (s *MatchmakingService) Session(ctx context.Context, sessionID string) (*model.MatchSession, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// Accept closes the flow on the current candidate and notifies both parties.
// Notification failures are logged and do not fail the accept.
func (s *MatchmakingService) Accept(ctx context.Context, sessionID, actorID string) (*model.MatchSession, model.Candidate, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.ownedSession(ctx, sessionID, actorID)
	if err != nil {
		return nil, model.Candidate{}, err
	}
	current, ok := sess.Current()
	if !ok {
		return nil, model.Candidate{}, ErrSessionExhausted
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, model.Candidate{}, fmt.Errorf("close session: %w", err)
	}

	s.logger.Info("match accepted",
		zap.String("session_id", sessionID),
		zap.String("user_id", sess.OriginID),
		zap.String("candidate_id", current.UserID),
	)
	s.notify(ctx, sess.OriginID, sess.OriginID, current.UserID)
	s.notify(ctx, current.UserID, sess.OriginID, current.UserID)
	return sess, current, nil
}

// Reject advances the cursor. When the list runs out the flow is closed and
// the returned session reports Exhausted.
func (s *MatchmakingService) Reject(ctx context.Context, sessionID, actorID string) (*model.MatchSession, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.ownedSession(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}
	if sess.Exhausted() {
		return nil, ErrSessionExhausted
	}

	sess.Index++
	if sess.Exhausted() {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("close session: %w", err)
		}
		return sess, nil
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *MatchmakingService) ownedSession(ctx context.Context, sessionID, actorID string) (*model.MatchSession, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OriginID != actorID {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}

func (s *MatchmakingService) notify(ctx context.Context, recipientID, originID, candidateID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyMatch(ctx, recipientID, originID, candidateID); err != nil {
		s.logger.Warn("match notification failed",
			zap.String("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}
