package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverDynamoDB = "dynamodb"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Store       StoreConfig
}

// StoreConfig holds backing store configuration
type StoreConfig struct {
	Driver      string `validate:"required,oneof=dynamodb sqlite memory"`
	Region      string `validate:"required_if=Driver dynamodb"`
	TableName   string `validate:"required"`
	Endpoint    string `validate:"omitempty,url"`
	CreateTable bool
	SQLitePath  string `validate:"required_if=Driver sqlite"`
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "80")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverDynamoDB)
	v.SetDefault("AWS_REGION", "eu-west-1")
	v.SetDefault("TABLE_NAME", "ServerlessBlog")
	v.SetDefault("STORE_CREATE_TABLE", false)
	v.SetDefault("SQLITE_PATH", "./data/blog.db")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Store: StoreConfig{
			Driver:      v.GetString("STORE_DRIVER"),
			Region:      v.GetString("AWS_REGION"),
			TableName:   v.GetString("TABLE_NAME"),
			Endpoint:    v.GetString("DYNAMODB_ENDPOINT"),
			CreateTable: v.GetBool("STORE_CREATE_TABLE"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
