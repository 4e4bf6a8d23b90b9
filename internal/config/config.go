package config

import (
	"github.com/spf13/viper"
)

// Backend selects which store implementation serves the application.
type Backend string

const (
	BackendSQLite Backend = "sqlite" // embedded relational store, the default
	BackendRedis  Backend = "redis"  // key-value store, same surface
)

type (
	Config struct {
		HTTP
		Database
		Redis
		Storage
		Seed
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Redis struct {
		URL       string
		Namespace string
	}
	Storage struct {
		Backend Backend
	}
	Seed struct {
		Enabled bool
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

const DefaultDatabasePath = "./examtrainer.db"

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8288)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_namespace", "examtrainer")
	v.SetDefault("storage_backend", string(BackendSQLite))
	v.SetDefault("seed_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Redis: Redis{
			URL:       v.GetString("REDIS_URL"),
			Namespace: v.GetString("REDIS_NAMESPACE"),
		},
		Storage: Storage{
			Backend: Backend(v.GetString("STORAGE_BACKEND")),
		},
		Seed: Seed{
			Enabled: v.GetBool("SEED_ENABLED"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
