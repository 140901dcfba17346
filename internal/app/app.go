package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/roamlog/roamlog/internal/config"
	"github.com/roamlog/roamlog/internal/db"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/service"
	"github.com/roamlog/roamlog/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	UserService  *service.UserService
	StoryService *service.StoryService
	MediaService *service.MediaService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	storyRepository := repository.NewStoryRepository(database)

	// Storage
	mediaStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	placeholder := cfg.PlaceholderImageURL()
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.IsProduction(), cfg.JWTExpiry)
	userService := service.NewUserService(userRepository, mediaStorage, placeholder)
	storyService := service.NewStoryService(storyRepository, mediaStorage, placeholder)
	mediaService := service.NewMediaService(mediaStorage, placeholder)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		UserService:  userService,
		StoryService: storyService,
		MediaService: mediaService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
