// Package bootstrap wires configuration into the search services shared by
// the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/physiciansearch/backend/internal/adapters/cache"
	"github.com/zatekoja/physiciansearch/backend/internal/adapters/catalog"
	"github.com/zatekoja/physiciansearch/backend/internal/adapters/medicare"
	"github.com/zatekoja/physiciansearch/backend/internal/application/services"
	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/cmsdata"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
	"github.com/zatekoja/physiciansearch/backend/pkg/config"
)

// Services holds the wired application services
type Services struct {
	Search     *services.PhysicianSearchService
	Indication *services.IndicationSearchService

	closers []func() error
}

// Close releases backing connections
func (s *Services) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Build creates the response cache, dataset client, repository and services.
// When the Redis backend is selected but unreachable, it falls back to the
// in-memory cache.
func Build(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (*Services, error) {
	out := &Services{}

	var cacheProvider providers.CacheProvider
	switch cfg.CMS.CacheBackend {
	case "redis":
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory response cache")
			cacheProvider = cache.NewMemoryAdapter()
			break
		}
		out.closers = append(out.closers, redisClient.Close)
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis response cache initialized")
	case "memory":
		cacheProvider = cache.NewMemoryAdapter()
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CMS.CacheBackend)
	}

	client := cmsdata.NewClient(
		cmsdata.WithHTTPTimeout(cfg.CMS.HTTPTimeout),
		cmsdata.WithCache(cacheProvider, cfg.CMS.CacheTTL),
		cmsdata.WithPageDelay(cfg.CMS.PageDelay),
		cmsdata.WithMaxPages(cfg.CMS.MaxPages),
		cmsdata.WithMetrics(metrics),
	)
	repo := medicare.NewPhysicianAdapter(client, medicare.NewDatasetTable(&cfg.CMS))

	out.Search = services.NewPhysicianSearchService(repo)
	out.Indication = services.NewIndicationSearchService(catalog.NewDefaultCatalog(), repo, cfg.Enrichment, metrics)
	return out, nil
}
