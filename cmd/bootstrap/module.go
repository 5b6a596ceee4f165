package bootstrap

import (
	"roadready/cmd/bootstrap/components"
	"roadready/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule reads .env (if any) and the process environment once.
var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
)

// Module is the full application graph: storage and infra first, then the
// use cases and the HTTP surface that consume them.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	CacheModule,
	components.RepositoryModule,
	MessagingModule,
	components.UseCaseModule,
	components.HandlerModule,
)
