package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/profile"
	"go.uber.org/zap"
)

// openStore opens the configured profile store. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (profile.Store, func(), error) {
	if !cfg.UsesDatabase() {
		logger.Debug("using profile file", zap.String("path", cfg.ProfilePath))
		return profile.NewFileStore(cfg.ProfilePath), func() {}, nil
	}

	// Without an explicit profile the nil UUID is the single local profile.
	id := uuid.Nil
	if cfg.ProfileID != "" {
		parsed, err := uuid.Parse(cfg.ProfileID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid profile id: %w", err)
		}
		id = parsed
	}

	store, err := profile.Connect(ctx, cfg.DatabaseURL, id)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	logger.Debug("using profile database", zap.String("profile_id", id.String()))
	return store, store.Close, nil
}
