package components

import (
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,

		commands.NewBookUseCase,
		NewExchangeCommands,
		commands.NewAuthUseCase,

		// The auth middleware only needs token validation.
		func(a commands.AuthCommands) commands.TokenValidator {
			return a
		},
	),
)

func NewExchangeCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	exchangeQueries queries.ExchangeQueries,
	clk clock.Clock,
) commands.ExchangeCommands {
	return commands.NewExchangeUseCase(uow, exchangeQueries, clk, cfg.Exchange.MaxMessageLen)
}
