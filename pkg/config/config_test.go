package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Dashboard.CreditsPerSemester)
	assert.Equal(t, 200, cfg.Dashboard.EnrollmentListLimit)
	assert.Equal(t, "IU14140216", cfg.Demo.MatriculationNumber)
	assert.Equal(t, 6, cfg.Demo.TargetSemesters)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("PORT", "9090")
	t.Setenv("CREDITS_PER_SEMESTER", "20")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, ,http://127.0.0.1:5173")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("DB_RESET", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Database.Reset)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 20, cfg.Dashboard.CreditsPerSemester)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":             "oracle",
		"CREDITS_PER_SEMESTER":  "0",
		"ENROLLMENT_LIST_LIMIT": "-1",
		"PORT":                  "70000",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}
