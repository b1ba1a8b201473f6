package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"terrimap/config"
	"terrimap/internal/delivery"
	"terrimap/internal/delivery/api"
	"terrimap/internal/delivery/api/router/handler"
	"terrimap/internal/delivery/bridge"
	"terrimap/internal/domain/repository"
	logs "terrimap/internal/infra/log"
	"terrimap/internal/infra/pubsub"
	"terrimap/internal/infra/query"
	"terrimap/internal/infra/remote"
	"terrimap/internal/infra/tiles"
	"terrimap/internal/usecase/impl"
	"terrimap/internal/usecase/impl/session"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newRemoteClient,
		newQueryCache,
		newQueryHub,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			func(client *remote.Client) repository.TerritoryRepository { return client },
			func(client *remote.Client) repository.LocationRepository { return client },
			newReferenceLayers,
		),
	)
}

func injectService() fx.Option {
	return pubsub.Module
}

// newRemoteClient creates the remote data service client
func newRemoteClient(cfg *config.Config, logger *slog.Logger) (*remote.Client, error) {
	if cfg.Remote == nil || cfg.Remote.BaseURL == "" {
		return nil, errors.New("remote.baseUrl is required")
	}

	return remote.NewClient(logger, remote.Config{
		BaseURL:           cfg.Remote.BaseURL,
		Token:             cfg.Remote.Token,
		Timeout:           cfg.Remote.Timeout,
		RequestsPerSecond: cfg.Remote.RequestsPerSecond,
		Burst:             cfg.Remote.Burst,
	}), nil
}

// newReferenceLayers serves reference layers from local tiles, falling back to the remote service
func newReferenceLayers(cfg *config.Config, logger *slog.Logger, client *remote.Client) (repository.ReferenceLayerRepository, error) {
	return tiles.NewReferenceLayers(logger, cfg.Tiles, client)
}

// newQueryCache picks the shared query cache backend. The Redis backend also
// relays invalidations between instances; memory has no broadcaster.
func newQueryCache(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (query.Cache, query.Broadcaster, error) {
	if cfg.Cache == nil || cfg.Cache.Backend == "" || cfg.Cache.Backend == "memory" {
		return query.NewMemoryCache(), nil, nil
	}
	if cfg.Cache.Backend != "redis" {
		return nil, nil, errors.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
	if len(cfg.Cache.Redis.Addrs) == 0 {
		return nil, nil, errors.New("cache.redis.addrs is required for redis backend")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Cache.Redis.Addrs,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	logger.Info("Using Redis query cache", slog.Any("addrs", cfg.Cache.Redis.Addrs))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return errors.Wrap(client.Ping(ctx).Err(), "failed to reach redis")
		},
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return query.NewRedisCache(client, cfg.Cache.Redis.Prefix),
		query.NewRedisBroadcaster(client, cfg.Cache.Redis.Prefix), nil
}

func newQueryHub(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger *slog.Logger,
	cache query.Cache,
	broadcaster query.Broadcaster,
) *query.Hub {
	var ttl time.Duration
	if cfg.Cache != nil {
		ttl = cfg.Cache.TTL
	}

	hub := query.NewHub(logger, cache, ttl)
	if broadcaster == nil {
		return hub
	}
	hub.UseBroadcaster(broadcaster)

	listenCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := hub.ListenRemote(listenCtx); err != nil {
					logger.Error("Remote invalidation listener stopped", slog.Any("error", err))
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})

	return hub
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLayerService,
			session.NewService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewLayerHandler,
			bridge.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
