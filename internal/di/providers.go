package di

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"DiviHub/internal/domain/repository"
	"DiviHub/internal/engine/samplestore"
	"DiviHub/internal/handler/api"
	"DiviHub/internal/service/ratelimit"
	"DiviHub/internal/usecase"
	"DiviHub/pkg/cache"
	"DiviHub/pkg/config"
	xhttp "DiviHub/pkg/http"
	"DiviHub/pkg/http/middleware"
	applogger "DiviHub/pkg/logger"
	"DiviHub/pkg/metrics"
	"DiviHub/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Environment == "production" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSampleStore creates the in-memory sample window.
func ProvideSampleStore() repository.SampleStore {
	return samplestore.New()
}

// ProvideCache selects the cache backend from config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis", "layered":
		host, port, err := splitRedisAddr(cfg.Cache.Redis.Addr)
		if err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(host),
			cache.WithRedisPort(port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Type == "layered" {
			return cache.NewLayeredCache(rc), nil
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Cache.Type)
	}
}

func splitRedisAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("redis addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("redis addr %q: %w", addr, err)
	}
	return host, port, nil
}

// ProvideLimiter creates the shared token-bucket limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMonitoring creates the metrics ingestion use case.
func ProvideMonitoring(
	store repository.SampleStore,
	rec repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Monitoring {
	return usecase.NewMonitoring(
		store, rec, l,
		cfg.Monitoring.Window.Milliseconds(),
		usecase.WithDegradedThreshold(cfg.Monitoring.DegradedErrorRate),
	)
}

// ProvideAnalyzer creates the calculator use case.
func ProvideAnalyzer(cacheSvc cache.Service, rec repository.Metrics, l *applogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(cacheSvc, rec, l)
}

// ProvideHandler assembles the HTTP surface: rate-limited public
// ingestion, token-guarded admin views, and the calculators.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	mon *usecase.Monitoring,
	analyzer *usecase.Analyzer,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	rateLimit := middleware.RateLimit(limiter, cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
	adminAuth := middleware.AdminAuth(cfg.Monitoring.AdminToken)

	return &api.Composite{
		Metrics:     api.NewMetricsEchoHandler(l, mon, rateLimit, adminAuth),
		Calculators: api.NewCalculatorsEchoHandler(l, analyzer),
	}
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, mon *usecase.Monitoring) *server.App {
	return server.New(cfg, l, handler, mon)
}
