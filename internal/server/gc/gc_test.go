package gc

import (
	"context"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campushub/internal/server/biz"
	"github.com/campushq/campushub/internal/store"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	st := store.New(db, store.DialectSQLite)
	identity := biz.NewIdentityService(biz.IdentityServiceParams{Store: st})

	auth, err := biz.NewAuthService(biz.AuthServiceParams{
		Config: biz.AuthConfig{
			SecretKey: strings.Repeat("ab", 32),
			TokenTTL:  time.Hour,
		},
		Store:           st,
		IdentityService: identity,
	})
	require.NoError(t, err)

	return NewWorker(Params{
		Config:          Config{CRON: "*/10 * * * *"},
		AuthService:     auth,
		IdentityService: identity,
	})
}

func TestWorkerSweep(t *testing.T) {
	worker := newTestWorker(t)

	// An empty sweep must be a no-op.
	worker.RunSweepNow(context.Background())

	assert.Equal(t, 0, worker.AuthService.PurgeRevocations())
	assert.Equal(t, 0, worker.IdentityService.PurgeExpired())
}

func TestWorkerStartStop(t *testing.T) {
	worker := newTestWorker(t)

	ctx := context.Background()

	require.NoError(t, worker.Start(ctx))
	require.NotNil(t, worker.CancelFunc)
	require.NoError(t, worker.Stop(ctx))
}

func TestWorkerStartRejectsBadCron(t *testing.T) {
	worker := newTestWorker(t)
	worker.Config.CRON = "not a cron expr"

	err := worker.Start(context.Background())
	assert.Error(t, err)

	_ = worker.Executor.Shutdown(context.Background())
}
