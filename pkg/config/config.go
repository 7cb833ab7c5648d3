package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Env holds process configuration loaded from TIMEHUB_* environment variables.
type Env struct {
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	AppID         string        `envconfig:"APP_ID" default:"io.timehub.desktop"`
	AudioCacheDir string        `envconfig:"AUDIO_CACHE_DIR"` // empty: user cache dir
	FetchRetries  int           `envconfig:"FETCH_RETRIES" default:"3"`
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"20s"`
	TickInterval  time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
}

// Load reads environment variables into Env.
func Load() (Env, error) {
	var cfg Env
	if err := envconfig.Process("timehub", &cfg); err != nil {
		return cfg, err
	}
	if cfg.AudioCacheDir == "" {
		cfg.AudioCacheDir = defaultCacheDir()
	}
	if cfg.FetchRetries < 1 {
		cfg.FetchRetries = 1
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return cfg, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "timehub", "audio")
}
