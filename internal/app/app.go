package app

import (
	"go.uber.org/fx"

	"github.com/bitbites/canteen/internal/cache"
	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/database"
	"github.com/bitbites/canteen/internal/logger"
	"github.com/bitbites/canteen/internal/messaging"
	"github.com/bitbites/canteen/internal/observability"
	"github.com/bitbites/canteen/internal/refresh"
	repositorymenu "github.com/bitbites/canteen/internal/repository/menu"
	repositoryorder "github.com/bitbites/canteen/internal/repository/order"
	repositoryprofile "github.com/bitbites/canteen/internal/repository/profile"
	grpcserver "github.com/bitbites/canteen/internal/server/grpc"
	httpserver "github.com/bitbites/canteen/internal/server/http"
	servicemenu "github.com/bitbites/canteen/internal/service/menu"
	serviceorder "github.com/bitbites/canteen/internal/service/order"
	serviceprofile "github.com/bitbites/canteen/internal/service/profile"
	"github.com/bitbites/canteen/internal/token"
	transporthttp "github.com/bitbites/canteen/internal/transport/http"
	"github.com/bitbites/canteen/internal/worker"
	workerorder "github.com/bitbites/canteen/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	refresh.Module,
	fx.Provide(func(cfg config.Config) *token.Generator {
		return token.NewGenerator(cfg.Sites.TokenPrefixes)
	}),
	repositoryorder.Module,
	repositorymenu.Module,
	repositoryprofile.Module,
	serviceorder.Module,
	servicemenu.Module,
	serviceprofile.Module,
)

// HTTP wires the HTTP and gRPC transports on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background event consumption feeding the refresh hub.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring for the API executable.
var Module = HTTP
