package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"sawah/pkg/logging"
)

type AppConfig struct {
	Port        string
	Timezone    string
	DBPath      string
	SeedWindows string        // optional CSV/XLSX/YAML table of seed ripeness windows
	AmberColor  string        // APPROACHING color
	TuaiRefresh time.Duration // 0 disables the periodic re-color
	LogLevel    string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function, falling back to defaults.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	refresh, err := time.ParseDuration(get("TUAI_REFRESH", "0"))
	if err != nil || refresh < 0 {
		logging.Log.Warnf("[cfg] bad TUAI_REFRESH %q, refresh disabled", getenv("TUAI_REFRESH"))
		refresh = 0
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		Timezone:    get("TZ", "Asia/Kuala_Lumpur"),
		DBPath:      get("DB_PATH", "sawah.db"),
		SeedWindows: get("SEED_WINDOWS", ""),
		AmberColor:  get("RIPENESS_AMBER", "#ffd700"),
		TuaiRefresh: refresh,
		LogLevel:    get("LOG_LEVEL", "info"),
	}
	logging.Log.Infof("[cfg] %+v", cfg)
	return cfg
}

// Location resolves Timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logging.Log.Warnf("[cfg] unknown TZ %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
