package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "GOPHFIN_"

// dotenvFiles lists the optional dotenv files merged into the process
// environment. Variables already set in the environment win.
var dotenvFiles = []string{".env"}

// parseEnv overlays Config with GOPHFIN_* variables. Unset variables leave
// the current value untouched.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
}
