package router

import (
	"context"

	"github.com/oksasatya/worksafe-api/internal/application"
	"github.com/oksasatya/worksafe-api/internal/container"
	repo "github.com/oksasatya/worksafe-api/internal/domain/repository"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/cache"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/memory"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/worksafe-api/internal/infrastructure/postgres"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/search"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/worksafe-api/internal/interface/http"
	"github.com/oksasatya/worksafe-api/internal/router/modules"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

type WorkstationModuleDeps struct {
	Repo    repo.WorkstationRepository
	Service *application.Service
	Handler *handlers.WorkstationHandler
}

func buildRepository() repo.WorkstationRepository {
	cfg := container.GetConfig()
	if pool := container.GetPGPool(); pool != nil && !cfg.UseMemoryStorage() {
		return pginfra.NewWorkstationRepository(pool)
	}
	if !cfg.UseMemoryStorage() {
		helpers.LogWarn(container.GetLogger(), "postgres pool missing, using in-memory storage", nil, nil)
	}
	return memory.NewWorkstationRepository()
}

func buildCache() repo.WorkstationCache {
	cfg := container.GetConfig()
	if rdb := container.GetRedis(); rdb != nil {
		return cache.NewRedisCache(rdb, cfg.CacheTTL)
	}
	return cache.NewLRUCache(cfg.CacheLRUSize, cfg.CacheTTL)
}

// Optional integrations return an untyped nil so the service sees them as absent.

func buildIndex() application.SearchIndex {
	if es := container.GetES(); es != nil {
		return search.NewWorkstationIndex(es, container.GetConfig().ESWorkstationsIndex)
	}
	return nil
}

func buildPublisher() application.EventPublisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return messaging.NewWorkstationPublisher(pub)
	}
	return nil
}

func buildReportStore() application.ReportStore {
	cfg := container.GetConfig()
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		return storage.NewReportStore(gcs, cfg.GCSBucket)
	}
	return nil
}

func buildWorkstationDeps() WorkstationModuleDeps {
	r := buildRepository()

	service := application.NewService(
		r,
		buildCache(),
		buildIndex(),
		buildPublisher(),
		buildReportStore(),
		container.GetLogger(),
	)

	handler := handlers.NewWorkstationHandler(
		service,
		container.GetLogger(),
		container.GetConfig().PublicBaseURL,
	)

	return WorkstationModuleDeps{
		Repo:    r,
		Service: service,
		Handler: handler,
	}
}

// buildHealthChecks probes every configured backing service.
func buildHealthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(buildHealthChecks())))

	deps := buildWorkstationDeps()
	r.Add(modules.NewWorkstationModule(deps.Handler))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
