//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/bootstrap"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
	httpiface "github.com/cocreateceo/Vedic-Astro-sub002/internal/interface/http"
	"github.com/cocreateceo/Vedic-Astro-sub002/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChartConfig,
		provideChartCache,
		provideProfileRepository,
		provideExportStorage,
		chart.NewService,
		profile.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
