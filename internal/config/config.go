package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	AppPort    string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	JWTSecret  string

	// AllowNegativeStock controls whether a checkout may drive a product's
	// stock below zero (back-order mode). When false the stock decrement is
	// guarded and the whole checkout fails with ErrStockUnavailable.
	AllowNegativeStock bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             os.Getenv("APP_ENV"),
		AppPort:            os.Getenv("APP_PORT"),
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowNegativeStock: parseBool(os.Getenv("ALLOW_NEGATIVE_STOCK")),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
