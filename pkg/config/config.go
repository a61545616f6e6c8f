package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Library struct {
		RootDir     string `env:"LIBRARY_ROOT_DIR" env-default:"./photos"`
		TrashDir    string `env:"LIBRARY_TRASH_DIR" env-default:"./photos/.trash"`
		IndexPath   string `env:"LIBRARY_INDEX_PATH" env-default:"./svenswipe-index.db"`
		StatePath   string `env:"LIBRARY_STATE_PATH" env-default:"./svenswipe-auth"`
		CacheSize   int    `env:"LIBRARY_CACHE_SIZE" env-default:"24"`
		PreheatRate int    `env:"LIBRARY_PREHEAT_PER_SEC" env-default:"8"`
	}
	Session struct {
		PreheatWindow  int     `env:"SESSION_PREHEAT_WINDOW" env-default:"6"`
		SwipeThreshold float64 `env:"SESSION_SWIPE_THRESHOLD" env-default:"120"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Ads struct {
		ServerURL string `env:"ADS_SERVER_URL"`
	}
	Prefs struct {
		Path string `env:"PREFS_PATH" env-default:"./svenswipe-prefs.json"`
	}
}

// PostgresDSN builds the connection string used for both the pool and the
// migration runner.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
