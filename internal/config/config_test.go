package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, MaxQuestionsCap, cfg.Engine.MaxQuestions)
	assert.Equal(t, 100, cfg.Engine.HistorySessionLimit)
	assert.Equal(t, 200, cfg.Migration.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Migration.BatchDelay)
	assert.Equal(t, 10*time.Minute, cfg.Migration.LockTTL)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
}

func TestValidate(t *testing.T) {
	t.Run("clamps max questions", func(t *testing.T) {
		cfg := &Config{Engine: EngineConfig{MaxQuestions: 500}, Migration: MigrationConfig{BatchSize: 10}}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, MaxQuestionsCap, cfg.Engine.MaxQuestions)
	})

	t.Run("keeps smaller cap", func(t *testing.T) {
		cfg := &Config{Engine: EngineConfig{MaxQuestions: 40}, Migration: MigrationConfig{BatchSize: 10}}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 40, cfg.Engine.MaxQuestions)
	})

	t.Run("rejects non-positive batch size", func(t *testing.T) {
		cfg := &Config{Migration: MigrationConfig{BatchSize: 0}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative history limit", func(t *testing.T) {
		cfg := &Config{Engine: EngineConfig{HistorySessionLimit: -1}, Migration: MigrationConfig{BatchSize: 1}}
		assert.Error(t, cfg.Validate())
	})
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{Host: "db", Port: 1521, User: "u", Password: "p", DBName: "svc"}}
	assert.Equal(t, "oracle://u:p@db:1521/svc", cfg.GetDSN())
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "override-host")
	t.Setenv("REDIS_ADDRESS", "redis:6380")
	t.Setenv("JWT_SECRET_KEY", "secret")

	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)
	applyEnvOverrides(cfg, v)

	assert.Equal(t, "override-host", cfg.DB.Host)
	assert.Equal(t, "redis:6380", cfg.Redis.Address)
	assert.Equal(t, "secret", cfg.JWT.SecretKey)
}
