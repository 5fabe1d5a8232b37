package app

import (
	"context"
	"errors"
	"fmt"

	"intern-match/internal/config"
	"intern-match/internal/database"
	"intern-match/internal/database/migration"
	dbpostgres "intern-match/internal/database/postgres"
	"intern-match/internal/database/seeder"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/domain/application"
	"intern-match/internal/domain/bookmark"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/matching"
	"intern-match/internal/infrastructure/cache"
	"intern-match/internal/infrastructure/chat"
	"intern-match/internal/infrastructure/events"
	"intern-match/internal/pkg/jwt"
	"intern-match/internal/repository"
	"intern-match/internal/repository/memory"
	"intern-match/internal/usecase"
	useruc "intern-match/internal/usecase/user"
	"intern-match/internal/ws"

	"go.uber.org/zap"
)

type Repositories struct {
	Users        useruc.Store
	Internships  internship.Repository
	Dismissals   internship.DismissalRepository
	Applications application.Repository
	Bookmarks    bookmark.Repository
}

type Container struct {
	Config config.Config
	Log    *zap.Logger

	// DB is nil for the memory driver.
	DB    database.DB
	Repos Repositories

	Cache     *cache.Redis
	Limiter   middleware.Limiter
	Hub       *ws.Hub
	Publisher usecase.EventPublisher
	JWT       jwt.Service

	Auth            *usecase.Auth
	Profiles        *useruc.Service
	Internships     *usecase.Internships
	Recommendations *usecase.Recommendations
	Ledger          *usecase.Ledger
	Chat            *usecase.Chat

	closers []func() error
}

// NewContainer opens the store, applies migrations and seeds when configured,
// and wires every usecase. Close releases what was opened, in reverse order.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Container{Config: cfg, Log: log}

	if err := c.openStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if cfg.App.SeedOnBoot || cfg.Database.Driver == config.DriverMemory {
		if err := c.Seed(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log)
	c.closers = append(c.closers, c.Cache.Close)
	if client := c.Cache.Client(); client != nil {
		c.Limiter = cache.NewRedisLimiter(client, "ratelimit")
	} else {
		c.Limiter = cache.NewMemoryLimiter()
	}

	c.Hub = ws.NewHub(log)
	c.Publisher = events.Multi{c.newBroker(), c.Hub}

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	if err := c.wireUsecases(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverMemory:
		store := memory.New()
		c.closers = append(c.closers, store.Close)
		users := store.Users()
		internships := store.Internships()
		c.Repos = Repositories{
			Users:        users,
			Internships:  internships,
			Dismissals:   internships,
			Applications: store.Applications(),
			Bookmarks:    store.Bookmarks(),
		}
		c.Log.Warn("using in-memory store, data is lost on restart")
		return nil

	case config.DriverPostgres:
		db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Log)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		c.closers = append(c.closers, db.Close)

		if c.Config.Database.MigrateOnBoot {
			if err := (migration.Runner{Log: c.Log}).Up(db.SQLDB()); err != nil {
				return err
			}
		}

		internships := repository.NewPostgresInternshipRepository(db)
		c.Repos = Repositories{
			Users:        repository.NewPostgresUserRepository(db),
			Internships:  internships,
			Dismissals:   internships,
			Applications: repository.NewPostgresApplicationRepository(db),
			Bookmarks:    repository.NewPostgresBookmarkRepository(db),
		}
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}
}

// newBroker returns the RabbitMQ publisher when configured. A broker that
// cannot be reached at boot degrades to logging events.
func (c *Container) newBroker() usecase.EventPublisher {
	if c.Config.RabbitMQ.URL == "" {
		return events.NewLog(c.Log)
	}
	mq, err := events.NewRabbitMQ(c.Config.RabbitMQ, c.Log)
	if err != nil {
		c.Log.Warn("rabbitmq unavailable, logging events instead", zap.Error(err))
		return events.NewLog(c.Log)
	}
	c.closers = append(c.closers, mq.Close)
	return mq
}

func (c *Container) wireUsecases(ctx context.Context) error {
	cfg := c.Config

	eligibility, err := matching.ParseEligibility(cfg.Matching.Eligibility)
	if err != nil {
		return err
	}
	engine, err := matching.NewEngine(matching.Options{
		SkillWeight:    cfg.Matching.SkillWeight,
		InterestWeight: cfg.Matching.InterestWeight,
		Eligibility:    eligibility,
		FallbackSize:   cfg.Matching.FallbackSize,
	})
	if err != nil {
		return fmt.Errorf("matching engine: %w", err)
	}

	c.Auth = usecase.NewAuthUsecase(c.Repos.Users, c.JWT)
	c.Internships = usecase.NewInternshipUsecase(c.Repos.Internships, c.Cache, cfg.Redis.TTL, c.Publisher, c.Log)
	c.Recommendations = usecase.NewRecommendationUsecase(usecase.RecommendationDeps{
		Engine:       engine,
		Profiles:     c.Repos.Users,
		Internships:  c.Repos.Internships,
		Dismissals:   c.Repos.Dismissals,
		Applications: c.Repos.Applications,
		Cache:        c.Cache,
		TTL:          cfg.Redis.TTL,
		MaxResults:   cfg.Matching.MaxResults,
		Log:          c.Log,
	})
	c.Profiles = useruc.NewService(c.Repos.Users, c.Recommendations.Invalidate)
	c.Ledger = usecase.NewLedgerUsecase(usecase.LedgerDeps{
		Applications:    c.Repos.Applications,
		Bookmarks:       c.Repos.Bookmarks,
		Internships:     c.Repos.Internships,
		Cache:           c.Cache,
		Publisher:       c.Publisher,
		Notifier:        c.Hub,
		EnforceCapacity: cfg.Ledger.EnforceCapacity,
		Log:             c.Log,
	})

	var primary usecase.Responder
	if cfg.Gemini.APIKey != "" {
		g, err := chat.NewGemini(ctx, cfg.Gemini)
		if err != nil {
			c.Log.Warn("gemini disabled", zap.Error(err))
		} else {
			primary = g
		}
	}
	c.Chat = usecase.NewChatUsecase(primary, chat.NewRules(), c.Repos.Users, cfg.Chat.MaxQueryLength, c.Log)
	return nil
}

// Seed runs the default seeders against the open store.
func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{
		Seeders: seeder.Defaults(c.Config.Seed, c.Repos.Users, c.Repos.Internships),
		Log:     c.Log,
	}
	return r.Run(ctx)
}

// Ping checks the store. The memory driver is always healthy.
func (c *Container) Ping(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Ping(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
