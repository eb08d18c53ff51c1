package devbackend

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gophfinance/internal/flagx"
)

// Config of the dev server, read from GOPHFIN_DEV_* variables and flags.
type Config struct {
	Addr     string        `env:"ADDR" envDefault:":8080"`
	Secret   string        `env:"JWT_SECRET" envDefault:"gophfinance-dev-secret"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`

	// AdminEmail, when set, is registered at startup with the admin role.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("dotenv: %w", err)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "GOPHFIN_DEV_"}); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}

	fset := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fset.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	if err := fset.Parse(flagx.FilterArgs(args, []string{"-a", "-l"})); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if cfg.Secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, errors.New("admin email and password must be set together")
	}
	return cfg, nil
}
