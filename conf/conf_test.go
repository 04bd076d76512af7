package conf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "campushub", config.Server.Name)
	assert.Equal(t, 8090, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "sqlite", config.DB.Dialect)
	assert.Equal(t, 7*24*time.Hour, config.Auth.TokenTTL)
	assert.Equal(t, "*/10 * * * *", config.GC.CRON)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CAMPUSHUB_SERVER_PORT", "9999")
	t.Setenv("CAMPUSHUB_DB_DIALECT", "postgres")
	t.Setenv("CAMPUSHUB_DB_DSN", "postgres://localhost/campushub")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "postgres", config.DB.Dialect)
	assert.Equal(t, "postgres://localhost/campushub", config.DB.DSN)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		config := &Config{}
		config.Server.Port = 8090
		config.DB.Dialect = "sqlite"
		config.DB.DSN = "file:campushub.db"
		config.Auth.TokenTTL = time.Hour
		config.GC.CRON = "*/10 * * * *"

		return config
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		config := valid()
		config.Server.Port = 70000

		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.port")
	})

	t.Run("missing dsn", func(t *testing.T) {
		config := valid()
		config.DB.DSN = ""

		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db.dsn")
	})

	t.Run("short secret key", func(t *testing.T) {
		config := valid()
		config.Auth.SecretKey = "too-short"

		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret_key")
	})

	t.Run("empty secret key is allowed", func(t *testing.T) {
		// An empty key means one is generated at startup.
		assert.NoError(t, valid().Validate())
	})

	t.Run("all problems reported at once", func(t *testing.T) {
		config := &Config{}

		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.port")
		assert.Contains(t, err.Error(), "db.dialect")
		assert.Contains(t, err.Error(), "db.dsn")
		assert.Contains(t, err.Error(), "token_ttl")
		assert.Contains(t, err.Error(), "gc.cron")
	})
}

func TestComponents(t *testing.T) {
	config := &Config{}
	config.Server.Port = 8090
	config.Auth.SecretKey = strings.Repeat("ab", 32)

	serverCfg, _, _, authCfg, _ := Components(config)

	assert.Equal(t, 8090, serverCfg.Port)
	assert.Equal(t, config.Auth.SecretKey, authCfg.SecretKey)
}
