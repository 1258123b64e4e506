package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/sfdsa-platform/backend/config"
	"github.com/sfdsa-platform/backend/internal/model"
	"github.com/sfdsa-platform/backend/migration"
	"github.com/sfdsa-platform/backend/pkg/authenticator"
	"github.com/sfdsa-platform/backend/pkg/logger"
	"github.com/sfdsa-platform/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "session",
		},
		Email: config.EmailConfigs{
			Topic: "send-mail",
			From:  "noreply@sfdeputysheriff.org",
		},
		File: config.FileConfigs{
			MaxSize:   2 * 1024 * 1024,
			MaxMemory: 2 * 1024 * 1024,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
