// File: cmd/server/app.go
package main

import (
	"fmt"
	"net/http"

	"github.com/iyunix/go-habitcoach/internal/config"
	"github.com/iyunix/go-habitcoach/internal/handlers"
	"github.com/iyunix/go-habitcoach/internal/idgen"
	"github.com/iyunix/go-habitcoach/internal/repository"
	"github.com/iyunix/go-habitcoach/internal/repository/activity"
	"github.com/iyunix/go-habitcoach/internal/repository/conversation"
	"github.com/iyunix/go-habitcoach/internal/repository/user"
	"github.com/iyunix/go-habitcoach/internal/services"
	chatservice "github.com/iyunix/go-habitcoach/internal/services/chat"
	"github.com/iyunix/go-habitcoach/internal/services/gateway"
	"github.com/iyunix/go-habitcoach/internal/services/user_services"
)

// Application aggregates all services and handlers
type Application struct {
	Config *config.Config
	Logger services.Logger
	Router http.Handler

	UserRepo         user.UserRepository
	ActivityRepo     activity.ActivityRepository
	ConversationRepo conversation.ConversationRepository

	Gateway         gateway.Client
	TokenService    *user_services.TokenService
	AuthService     *user_services.AuthService
	UserService     *user_services.UserService
	ActivityService *services.ActivityService
	ChatService     *services.ChatService
	StatusService   *services.StatusService
}

// Provider functions

func ProvideRepositories(cfg *config.Config) (user.UserRepository, activity.ActivityRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := repository.OpenDatabase(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return user.NewGormUserRepository(db), activity.NewGormActivityRepository(db), nil
	case config.DriverMemory, "":
		return user.NewMemoryUserRepository(), activity.NewMemoryActivityRepository(), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func ProvideGatewayConfig(cfg *config.Config) *gateway.Config {
	gwConfig := gateway.DefaultConfig()
	gwConfig.URL = cfg.GatewayURL
	gwConfig.APIKey = cfg.GatewayAPIKey
	gwConfig.Model = cfg.GatewayModel
	gwConfig.Timeout = cfg.GatewayTimeout
	return gwConfig
}

func ProvideChatConfig(cfg *config.Config) *chatservice.Config {
	chatConfig := chatservice.DefaultConfig()
	if cfg.HistoryWindow > 0 {
		chatConfig.HistoryWindow = cfg.HistoryWindow
	}
	return chatConfig
}

func InitializeApplication(cfg *config.Config, logger services.Logger) (*Application, error) {
	userRepo, activityRepo, err := ProvideRepositories(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	conversationRepo := conversation.NewMemoryConversationRepository()

	gw, err := gateway.New(cfg.GatewayProvider, ProvideGatewayConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}

	chatConfig := ProvideChatConfig(cfg)
	tokens := user_services.NewTokenService(userRepo, cfg.TokenTTL, logger)
	auth := user_services.NewAuthService(userRepo, tokens, idgen.New(), cfg.BcryptCost, logger)
	users := user_services.NewUserService(userRepo, logger)
	activities := services.NewActivityService(activityRepo, chatConfig.ActivityExcerptLen, logger)
	chat, err := services.NewChatService(chatConfig, conversationRepo, gw, activities, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}
	status := services.NewStatusService(users, tokens, activities)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:   handlers.NewAuthHandler(auth, logger),
		Chat:   handlers.NewChatHandler(chat, logger),
		User:   handlers.NewUserHandler(users, activities, logger),
		Status: handlers.NewStatusHandler(status, logger),
		Tokens: tokens,
		Logger: logger,
	})

	return &Application{
		Config:           cfg,
		Logger:           logger,
		Router:           router,
		UserRepo:         userRepo,
		ActivityRepo:     activityRepo,
		ConversationRepo: conversationRepo,
		Gateway:          gw,
		TokenService:     tokens,
		AuthService:      auth,
		UserService:      users,
		ActivityService:  activities,
		ChatService:      chat,
		StatusService:    status,
	}, nil
}
