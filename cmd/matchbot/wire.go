package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/config"
	"github.com/Sakemo/matchmake-bot/internal/database"
	"github.com/Sakemo/matchmake-bot/internal/handler"
	"github.com/Sakemo/matchmake-bot/internal/jobs"
	"github.com/Sakemo/matchmake-bot/internal/repository"
	"github.com/Sakemo/matchmake-bot/internal/repository/sqlite"
	"github.com/Sakemo/matchmake-bot/internal/service"
	"github.com/Sakemo/matchmake-bot/internal/session"
)

// stores holds the five record sets of the selected backend
type stores struct {
	questions     service.QuestionRepository
	answers       service.AnswerRepository
	personality   service.PersonalityRepository
	compatibility service.RoleCompatibilityRepository
	tags          service.RoleTagRepository
	ping          func(ctx context.Context) error
	close         func() error
}

func openStores(ctx context.Context, dbCfg config.DatabaseConfig, log *zap.Logger) (*stores, error) {
	switch dbCfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, dbCfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite store", zap.String("path", dbCfg.SQLitePath))
		return &stores{
			questions:     store.Questions(),
			answers:       store.Answers(),
			personality:   store.Personality(),
			compatibility: store.RoleCompatibility(),
			tags:          store.RoleTags(),
			ping:          store.Ping,
			close:         store.Close,
		}, nil

	case config.DriverSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      dbCfg.Host,
			Port:      dbCfg.Port,
			User:      dbCfg.User,
			Password:  dbCfg.Password,
			Namespace: dbCfg.Namespace,
			Database:  dbCfg.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("connected to database",
			zap.String("host", dbCfg.Host),
			zap.String("database", dbCfg.Database),
		)
		return &stores{
			questions:     repository.NewQuestionRepository(db),
			answers:       repository.NewAnswerRepository(db),
			personality:   repository.NewPersonalityRepository(db),
			compatibility: repository.NewRoleCompatibilityRepository(db),
			tags:          repository.NewRoleTagRepository(db),
			ping:          db.Ping,
			close:         db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", dbCfg.Driver)
}

// sessionBackend is the browse session store plus whatever keeps it tidy
type sessionBackend struct {
	store   session.Store
	janitor *jobs.SessionJanitor
	ping    func(ctx context.Context) error
	close   func() error
}

func openSessions(ctx context.Context, c *config.Config, log *zap.Logger) (*sessionBackend, error) {
	if !c.UseRedis() {
		mem := session.NewMemoryStore(session.MemoryConfig{TTL: c.Session.TTL})
		return &sessionBackend{
			store:   mem,
			janitor: jobs.NewSessionJanitor(mem, c.Session.SweepInterval, log),
			close:   func() error { return nil },
		}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	store := session.NewRedisStore(client, session.RedisConfig{Prefix: c.Redis.Prefix, TTL: c.Session.TTL})
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("browse sessions stored in redis", zap.String("addr", c.Redis.Addr))
	return &sessionBackend{store: store, ping: store.Ping, close: client.Close}, nil
}

// platform is what the services need from the chat platform
type platform struct {
	members  service.MemberDirectory
	notifier service.Notifier
}

// buildResponder wires services and handlers into the dispatch table
func buildResponder(st *stores, sessions session.Store, p platform, log *zap.Logger) (*handler.Responder, error) {
	locks := service.NewKeyedMutex()

	questionnaire := service.NewQuestionnaireService(service.QuestionnaireServiceConfig{Repo: st.questions})
	answers := service.NewAnswerService(service.AnswerServiceConfig{
		Answers:   st.answers,
		Questions: st.questions,
		Locks:     locks,
	})
	personality := service.NewPersonalityService(service.PersonalityServiceConfig{
		Repo:  st.personality,
		Locks: locks,
	})
	roles := service.NewRoleCatalogService(service.RoleCatalogServiceConfig{
		Compatibility: st.compatibility,
		Tags:          st.tags,
	})
	profiles := service.NewProfileService(service.ProfileServiceConfig{
		Answers:     st.answers,
		Personality: st.personality,
		Roles:       roles,
	})
	matchmaking := service.NewMatchmakingService(service.MatchmakingServiceConfig{
		Answers:     st.answers,
		Personality: st.personality,
		Questions:   st.questions,
		Roles:       roles,
		Members:     p.members,
		Sessions:    sessions,
		Notifier:    p.notifier,
		Logger:      log,
	})

	router := bot.NewRouter(log)
	err := handler.Register(router,
		handler.NewQuestionnaireHandler(handler.QuestionnaireHandlerConfig{QuestionnaireService: questionnaire}),
		handler.NewRoleCatalogHandler(handler.RoleCatalogHandlerConfig{RoleCatalogService: roles}),
		handler.NewAnswerHandler(handler.AnswerHandlerConfig{QuestionnaireService: questionnaire, AnswerService: answers}),
		handler.NewPersonalityHandler(handler.PersonalityHandlerConfig{PersonalityService: personality}),
		handler.NewMatchmakingHandler(handler.MatchmakingHandlerConfig{MatchmakingService: matchmaking}),
		handler.NewProfileHandler(handler.ProfileHandlerConfig{ProfileService: profiles, Members: p.members}),
	)
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return handler.NewResponder(router, log), nil
}
