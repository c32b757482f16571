package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/caarlos0/env/v11"
)

// SubmitStdout as KRSPLAN_SUBMIT_DIR writes submissions to standard output.
const SubmitStdout = "-"

// Config holds the krsplan settings read from the environment.
type Config struct {
	DBPath         string        `env:"KRSPLAN_DB"`
	Locale         string        `env:"KRSPLAN_LOCALE"          envDefault:"id"`
	ValidateDelay  time.Duration `env:"KRSPLAN_VALIDATE_DELAY"  envDefault:"2s"`
	LogUseCases    bool          `env:"KRSPLAN_LOG_USE_CASES"   envDefault:"false"`
	SubmitDir      string        `env:"KRSPLAN_SUBMIT_DIR"`
	Jurusan        []string      `env:"KRSPLAN_JURUSAN"         envDefault:"Informatika,DMU" envSeparator:","`
	DefaultJurusan string        `env:"KRSPLAN_DEFAULT_JURUSAN" envDefault:"DMU"`
}

// Load reads configuration from environment variables and fills the
// path defaults: the database at ~/.krsplan/krsplan.db and submissions in
// a submissions directory beside it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".krsplan", "krsplan.db")
	}
	if cfg.SubmitDir == "" {
		cfg.SubmitDir = filepath.Join(filepath.Dir(cfg.DBPath), "submissions")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	if !domain.ValidLocales[c.Locale] {
		return fmt.Errorf("KRSPLAN_LOCALE: unsupported locale %q (use id or en)", c.Locale)
	}
	if c.ValidateDelay < 0 {
		return fmt.Errorf("KRSPLAN_VALIDATE_DELAY must not be negative, got %s", c.ValidateDelay)
	}
	return nil
}

// MessageLocale returns the locale for diagnostic messages.
func (c Config) MessageLocale() domain.Locale {
	return domain.Locale(c.Locale)
}
