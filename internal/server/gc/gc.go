// Package gc runs the periodic sweep of in-memory caches: expired token
// revocations and stale grant cache entries.
package gc

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/server/biz"
)

type Config struct {
	CRON string `conf:"cron" yaml:"cron" json:"cron"`
}

// Worker handles cache cleanup on a cron schedule.
type Worker struct {
	AuthService     *biz.AuthService
	IdentityService *biz.IdentityService
	Executor        executors.ScheduledExecutor
	Config          Config
	CancelFunc      context.CancelFunc
}

type Params struct {
	fx.In

	Config          Config
	AuthService     *biz.AuthService
	IdentityService *biz.IdentityService
}

func NewWorker(params Params) *Worker {
	return &Worker{
		AuthService:     params.AuthService,
		IdentityService: params.IdentityService,
		Executor:        executors.NewPoolScheduleExecutor(executors.WithMaxConcurrent(1)),
		Config:          params.Config,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	cancelFunc, err := w.Executor.ScheduleFuncAtCronRate(
		w.runSweep,
		executors.CRONRule{Expr: w.Config.CRON},
	)
	if err != nil {
		return err
	}

	w.CancelFunc = cancelFunc

	log.Info(ctx, "GC worker started", log.String("cron", w.Config.CRON))

	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.CancelFunc != nil {
		w.CancelFunc()
	}

	return w.Executor.Shutdown(ctx)
}

func (w *Worker) runSweep(ctx context.Context) {
	revocations := w.AuthService.PurgeRevocations()
	grants := w.IdentityService.PurgeExpired()

	log.Debug(ctx, "cache sweep completed",
		log.Int("live_revocations", revocations),
		log.Int("live_grants", grants),
	)
}

// RunSweepNow manually triggers the sweep. Useful for testing.
func (w *Worker) RunSweepNow(ctx context.Context) {
	w.runSweep(ctx)
}
