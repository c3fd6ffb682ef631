package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habitkit/internal/config"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/service"
	"github.com/templui/habitkit/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	UserService     *service.UserService
	ProfileService  *service.ProfileService
	EmailService    *service.EmailService
	HabitService    *service.HabitService
	HabitLogService *service.HabitLogService
	ExportService   *service.ExportService
	TokenRepository repository.TokenRepository
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := NewWithDB(ctx, cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return a, nil
}

// NewWithDB wires repositories and services on an open, migrated database.
func NewWithDB(ctx context.Context, cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	habitLogRepository := repository.NewHabitLogRepository(database)

	// Storage
	exportStorage, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenMagicLinkExpiry,
	)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		UserService:     service.NewUserService(userRepository, profileRepository, emailService),
		ProfileService:  service.NewProfileService(profileRepository),
		EmailService:    emailService,
		HabitService:    service.NewHabitService(habitRepository, habitLogRepository),
		HabitLogService: service.NewHabitLogService(habitRepository, habitLogRepository),
		ExportService:   service.NewExportService(habitRepository, habitLogRepository, exportStorage),
		TokenRepository: tokenRepository,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
