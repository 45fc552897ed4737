package components

import (
	"bookswap/internal/infra"
	"bookswap/internal/infra/readstore"
	"bookswap/internal/infra/repository"
	"bookswap/internal/infra/uow"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,

		// Read stores serve queries outside of any transaction.
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookQueries)),
		),
		fx.Annotate(
			readstore.NewExchangeReadStore,
			fx.As(new(queries.ExchangeQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserQueries)),
		),

		// Pool-backed user lookups for the auth flow.
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserReader)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
