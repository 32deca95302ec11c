package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Driver represents the type of table implementation
type Driver string

const (
	DriverDynamoDB Driver = "dynamodb"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

// Factory creates Table instances based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new table factory
func NewFactory(logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
	}
}

// Create creates a Table instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, config *Config) (Table, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	var table Table
	var err error

	switch Driver(strings.ToLower(config.Driver)) {
	case DriverDynamoDB:
		table, err = f.createDynamoDBTable(ctx, config)
	case DriverSQLite:
		table, err = f.createSQLiteTable(ctx, config)
	case DriverMemory:
		table = NewMemoryTable()
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", config.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", config.Driver, err)
	}

	f.logger.WithFields(logrus.Fields{
		"driver": config.Driver,
		"table":  config.TableName,
	}).Info("Storage table initialized")

	return table, nil
}

// createDynamoDBTable creates a DynamoDB-backed table
func (f *Factory) createDynamoDBTable(ctx context.Context, config *Config) (Table, error) {
	client, err := NewDynamoDBClient(ctx, config.Region, config.Endpoint)
	if err != nil {
		return nil, err
	}

	table := NewDynamoDBTable(client, config.TableName, f.logger)

	if config.CreateTable {
		if err := table.EnsureTable(ctx, client); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// createSQLiteTable creates a SQLite-backed table
func (f *Factory) createSQLiteTable(ctx context.Context, config *Config) (Table, error) {
	dbPath := config.SQLitePath
	if dbPath == "" {
		dbPath = "./data/blog.db" // Default path
	}

	return NewSQLiteTable(ctx, dbPath, config.TableName, f.logger)
}
