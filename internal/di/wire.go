//go:build wireinject
// +build wireinject

package di

import (
	"DiviHub/pkg/config"
	"DiviHub/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Storage and cache
		ProvideSampleStore,
		ProvideCache,

		// Rate limiting
		ProvideLimiter,

		// Use cases
		ProvideMonitoring,
		ProvideAnalyzer,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
