package storage

import (
	"context"
	"fmt"

	"github.com/verdantleaf/storefront/pkg/config"
)

// OpenMedium builds the durable medium selected by configuration.
func OpenMedium(ctx context.Context, cfg *config.Config) (Medium, error) {
	switch cfg.State.Backend {
	case config.StateBackendFile:
		return NewFileMedium(cfg.State.Dir)
	case config.StateBackendSQLite:
		return NewSQLiteMedium(cfg.State.SQLitePath)
	case config.StateBackendRedis:
		return NewRedisMedium(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}
