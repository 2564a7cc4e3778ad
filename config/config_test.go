package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.Timezone)
	assert.Equal(t, "sawah.db", cfg.DBPath)
	assert.Equal(t, "#ffd700", cfg.AmberColor)
	assert.Equal(t, time.Duration(0), cfg.TuaiRefresh)
	assert.Empty(t, cfg.SeedWindows)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"PORT":           "9000",
		"SEED_WINDOWS":   "windows.csv",
		"RIPENESS_AMBER": "#b5a300",
		"TUAI_REFRESH":   "1h",
		"TZ":             "UTC",
	}))
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "windows.csv", cfg.SeedWindows)
	assert.Equal(t, "#b5a300", cfg.AmberColor)
	assert.Equal(t, time.Hour, cfg.TuaiRefresh)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestFromEnvBadRefresh(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{"TUAI_REFRESH": "soon"}))
	assert.Equal(t, time.Duration(0), cfg.TuaiRefresh)
}

func TestLocationFallback(t *testing.T) {
	cfg := AppConfig{Timezone: "Nowhere/Special"}
	assert.Equal(t, time.UTC, cfg.Location())
}
