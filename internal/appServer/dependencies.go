package appServer

import (
	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/cache"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/compositor"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/generator"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// dependencies shared by the http server and the render worker
type dependencies struct {
	repo      database.CreativeRepository
	processor processor.CreativeProcessor
	redis     *redis.Client
}

func newDependencies(cfg *config.Config) *dependencies {
	fileStorage := storage.NewFileStorage(cfg.App.StoragePath)
	creativeRepo := database.NewCreativeRepository(fileStorage)

	deps := &dependencies{repo: creativeRepo}

	// Redis is optional: without it every request renders
	var renderCache cache.RenderCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, render cache disabled")
		} else {
			deps.redis = client
			renderCache = cache.NewRedisRenderCache(client, cfg.Redis.CacheTTL)
		}
	}

	renderer := compositor.NewRenderer(cfg.App.FontPath, compositor.WithMaxPixels(cfg.App.MaxImagePixels))
	imageGenerator := generator.NewClient(cfg.Generator)
	deps.processor = processor.NewCreativeProcessor(creativeRepo, imageGenerator, renderer, renderCache)
	return deps
}

func (d *dependencies) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis client")
		}
	}
}
