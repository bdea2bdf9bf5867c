package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GRPCAddr   string
	DBPath     string
	Seed       bool
	ServiceEnv string
	LogLevel   string
}

func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		GRPCAddr:   getenv("CATALOG_GRPC_ADDR", ":50052"),
		DBPath:     getenv("CATALOG_DB_PATH", "./data/catalog.db"),
		Seed:       getenv("CATALOG_SEED", "true") == "true",
		ServiceEnv: getenv("SERVICE_ENV", "dev"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func setupLogging(env, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	log.Logger = log.With().Str("svc", "catalog").Logger()
}
