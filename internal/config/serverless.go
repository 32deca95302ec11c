package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	// Handler is the handler setting of the function (the _HANDLER variable).
	// Deployments with one function per operation set it to the operation name.
	Handler string
}

// GetServerlessConfig reads the serverless configuration from the Lambda runtime environment
func GetServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Handler:      os.Getenv("_HANDLER"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return isRunningInLambda()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(config *Config) *Config {
	if !IsServerlessMode() {
		return config
	}

	// CloudWatch picks up JSON log lines as structured events
	config.Environment = GetEnv("ENVIRONMENT", "production")

	// Only /tmp is writable inside the Lambda sandbox
	if config.Store.Driver == DriverSQLite && !strings.HasPrefix(config.Store.SQLitePath, "/tmp/") {
		config.Store.SQLitePath = filepath.Join("/tmp", filepath.Base(config.Store.SQLitePath))
	}

	// Tables are provisioned by the deployment template
	config.Store.CreateTable = false

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config), nil
}
