package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppPort         int           `envconfig:"APP_PORT"         default:"8080"`
	DBDriver        string        `envconfig:"DB_DRIVER"        default:"postgres"`
	DBHost          string        `envconfig:"DB_HOST"          default:"localhost"`
	DBPort          int           `envconfig:"DB_PORT"          default:"5432"`
	DBName          string        `envconfig:"DB_NAME"          default:"utmkit"`
	DBUser          string        `envconfig:"DB_USER"          default:"utmkit"`
	DBPassword      string        `envconfig:"DB_PASSWORD"      default:"utmkit"`
	DBPath          string        `envconfig:"DB_PATH"          default:"utmkit.db"`
	CacheKind       string        `envconfig:"CACHE_KIND"       default:"memory"`
	CacheHost       string        `envconfig:"CACHE_HOST"       default:"localhost"`
	CachePort       int           `envconfig:"CACHE_PORT"       default:"6379"`
	RedirectOrigin  string        `envconfig:"REDIRECT_ORIGIN"  default:"http://localhost:8080"`
	RequireContent  bool          `envconfig:"REQUIRE_CONTENT"  default:"false"`
	OptionsFile     string        `envconfig:"OPTIONS_FILE"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogDevelopment  bool          `envconfig:"LOG_DEVELOPMENT"  default:"true"`
	LogFile         string        `envconfig:"LOG_FILE"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Process reads an optional .env file in the working directory, then decodes
// the environment into Env.
func Process() (env Env, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return env, err
	}
	err = envconfig.Process("", &env)
	if err != nil {
		return env, err
	}

	switch env.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return env, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	switch env.CacheKind {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return env, errors.New("CACHE_KIND must be none, memory or redis")
	}
	return env, nil
}
