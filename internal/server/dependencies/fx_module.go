package dependencies

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/store"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(NewStore),
	fx.Provide(NewExecutors),
	fx.Invoke(func(lc fx.Lifecycle, st *store.Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return st.Migrate(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return st.DB().Close()
			},
		})
	}),
	fx.Invoke(func(lc fx.Lifecycle, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return executor.Shutdown(ctx)
			},
		})
	}),
)

func NewStore(cfg store.Config) (*store.Store, error) {
	db, dialect, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	return store.New(db, dialect), nil
}
