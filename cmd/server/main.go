package main

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"contacts_backend/internal/app/di"
	"contacts_backend/internal/app/router"
	authadapters "contacts_backend/internal/feature/auth/adapters"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	authusecase "contacts_backend/internal/feature/auth/usecase"
	contactadapters "contacts_backend/internal/feature/contacts/adapters"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	contactusecase "contacts_backend/internal/feature/contacts/usecase"
	userhandler "contacts_backend/internal/feature/users/transport/handler"
	userusecase "contacts_backend/internal/feature/users/usecase"
	"contacts_backend/internal/platform/config"
	platformdb "contacts_backend/internal/platform/db"
	"contacts_backend/internal/platform/mail"
	platformredis "contacts_backend/internal/platform/redis"
	"contacts_backend/internal/platform/storage"
	"contacts_backend/internal/platform/token"
)

func main() {
	cfg := config.Load()

	if cfg.Token.Secret == "" {
		slog.Warn("JWT_SECRET is not set, set a strong secret in production")
	}

	// db
	db := platformdb.OpenDB(cfg.Database, cfg.RunMigrations)

	// Redis; the cache and rate limiter degrade gracefully without it
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
		slog.Warn("redis unavailable, running without cache and rate limits", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// avatar storage; uploads are disabled when S3 is not configured
	var avatarStorage userusecase.AvatarStorage
	if cfg.Storage.Bucket == "" {
		slog.Warn("S3 bucket not configured, avatar uploads disabled")
	} else if s3, err := storage.NewS3Storage(context.Background(), cfg.Storage); err != nil {
		slog.Warn("S3 unavailable, avatar uploads disabled", "error", err)
	} else {
		avatarStorage = s3
	}

	// confirmation mail
	var sender authusecase.EmailSender
	if cfg.Mail.Host == "" {
		slog.Warn("SMTP not configured, confirmation mail disabled")
	} else {
		sender = mail.NewSMTPSender(cfg.Mail, cfg.BaseURL)
	}

	// platform services
	tokens := token.NewService(cfg.Token)
	userCache := di.NewUserCache(rdb)
	limiter := di.NewLimiter(rdb)

	// repositories
	userRepo := authadapters.NewUserPostgres(db)
	contactRepo := contactadapters.NewContactPostgres(db)

	// usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, userCache, sender)
	usersUC := userusecase.NewUsersUsecase(userRepo, userCache, avatarStorage)
	contactsUC := contactusecase.NewContactsUsecase(contactRepo)

	// handlers
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Users:    userhandler.NewUserHandler(usersUC),
		Contacts: contacthandler.NewContactHandler(contactsUC),
	}

	r := router.NewRouter(handlers, authUC, limiter, db)

	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
