// Package config loads runtime configuration for the gophfinance CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory (if present) and GOPHFIN_*
//     environment variables.
//  3. Optional JSON file selected via -c, -config or --config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-s string   session storage backend: sqlite, redis or memory
//	-d string   SQLite database path
//	-r string   Redis address (host:port)
//	-l string   log level: debug, info, warn, error
//	-t int      request timeout in seconds (0 disables)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "storage_backend": "sqlite",
//	  "db_path": "gophfinance.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "info",
//	  "request_timeout": "0s"
//	}
//
// Environment variables
//
//	GOPHFIN_API_BASE_URL, GOPHFIN_STORAGE_BACKEND, GOPHFIN_DB_PATH,
//	GOPHFIN_REDIS_ADDR, GOPHFIN_REDIS_PASSWORD, GOPHFIN_REDIS_DB,
//	GOPHFIN_LOG_LEVEL, GOPHFIN_REQUEST_TIMEOUT
package config
