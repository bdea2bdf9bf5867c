package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPAddr       string
	CatalogTarget  string
	CartTarget     string
	OrderTarget    string
	AllowedOrigins []string
	RequestTimeout time.Duration
	ServiceEnv     string
	LogLevel       string
}

func LoadConfig() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		HTTPAddr:       getEnv("GATEWAY_HTTP_ADDR", ":8080"),
		CatalogTarget:  getEnv("CATALOG_GRPC_TARGET", "localhost:50052"),
		CartTarget:     getEnv("CART_GRPC_TARGET", "localhost:50051"),
		OrderTarget:    getEnv("ORDER_GRPC_TARGET", "localhost:50053"),
		AllowedOrigins: splitList(getEnv("GATEWAY_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RequestTimeout: 5 * time.Second,
		ServiceEnv:     getEnv("SERVICE_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	if d, err := time.ParseDuration(os.Getenv("GATEWAY_TIMEOUT")); err == nil && d > 0 {
		cfg.RequestTimeout = d
	}
	return cfg
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
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
	log.Logger = log.With().Str("svc", "gateway").Logger()
}
