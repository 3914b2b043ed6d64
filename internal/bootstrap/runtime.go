// Package bootstrap wires the process-wide runtime dependencies.
package bootstrap

import (
	"fmt"
	"log/slog"

	"rawabit/internal/cache"
	"rawabit/internal/config"
	"rawabit/internal/database"
	"rawabit/internal/middleware"
	"rawabit/internal/models"
	"rawabit/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty database with demo data. It is ignored
	// outside development.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo {
		if err := seedDemo(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return db, r, nil
}

func seedDemo(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || cfg.Env != "development" {
		return nil
	}

	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	opts := seed.DefaultOptions()
	opts.ShouldClean = false
	if cfg.GroupChatTitle != "" {
		opts.GroupTitle = cfg.GroupChatTitle
	}
	sum, err := seed.NewSeeder(db, opts).Run()
	if err != nil {
		return err
	}
	middleware.Logger.Info("seeded demo data",
		slog.Int("users", sum.Users),
		slog.Int("messages", sum.Messages),
		slog.String("password", seed.DefaultPassword))
	return nil
}
