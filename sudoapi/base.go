package sudoapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/db"
	"github.com/KiloProjects/blognova/internal/config"
	"github.com/KiloProjects/blognova/internal/mdrenderer"
	"github.com/Yiling-J/theine-go"
)

type BaseAPI struct {
	db *db.DB
	rd *mdrenderer.Renderer

	sessionUserCache *theine.LoadingCache[string, *blognova.User]
}

func (s *BaseAPI) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("couldn't close DB: %w", err)
	}
	return nil
}

func GetBaseAPI(ctx context.Context, dbClient *db.DB) (*BaseAPI, error) {
	base := &BaseAPI{
		db: dbClient,
		rd: mdrenderer.NewRenderer(),

		sessionUserCache: nil,
	}
	sUserCache, err := theine.NewBuilder[string, *blognova.User](500).BuildWithLoader(func(ctx context.Context, sid string) (theine.Loaded[*blognova.User], error) {
		user, err := base.sessionUser(ctx, sid)
		if err != nil {
			return theine.Loaded[*blognova.User]{}, err
		}
		return theine.Loaded[*blognova.User]{
			Value: user,
			Cost:  1,
			TTL:   20 * time.Second,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not build session user cache: %w", err)
	}
	base.sessionUserCache = sUserCache

	return base, nil
}

func InitializeBaseAPI(ctx context.Context) (*BaseAPI, error) {
	dbClient, err := db.NewPSQL(ctx, config.Database.String())
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to DB: %w", err)
	}
	slog.InfoContext(ctx, "Connected to DB")

	if err := dbClient.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("couldn't run migrations: %w", err)
	}

	return GetBaseAPI(ctx, dbClient)
}
