package main

import (
	"context"

	"messenger-api/config"
	"messenger-api/internal/handler"
	"messenger-api/internal/repository"
	"messenger-api/internal/server"
	"messenger-api/internal/services"
	"messenger-api/internal/storage"
	"messenger-api/pkg/database"
	"messenger-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		l.Fatalf("Failed to create object store client: %v", err)
	}

	chatRepo := repository.NewChatRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	handlers := &server.Handlers{
		Chat:    handler.NewChatHandler(services.NewChatService(chatRepo, l)),
		Message: handler.NewMessageHandler(services.NewMessageService(messageRepo)),
		Upload:  handler.NewUploadHandler(services.NewUploadService(store, l)),
		User:    handler.NewUserHandler(services.NewUserService(userRepo, l)),
	}

	srv := server.New(cfg, l, pool)
	srv.SetupRoutes(handlers)

	if err := srv.Start(); err != nil {
		l.Errorf("Server stopped with error: %v", err)
	}
}
