package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophfinance/internal/flagx"
	"github.com/dmitrijs2005/gophfinance/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so that only keys present in the
// file override earlier sources.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	StorageBackend *string         `json:"storage_backend"`
	DBPath         *string         `json:"db_path"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisPassword  *string         `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	LogLevel       *string         `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Without such a flag nothing happens.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.StorageBackend, jc.StorageBackend)
	setIf(&cfg.DBPath, jc.DBPath)
	setIf(&cfg.RedisAddr, jc.RedisAddr)
	setIf(&cfg.RedisPassword, jc.RedisPassword)
	setIf(&cfg.RedisDB, jc.RedisDB)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
