package storage

import (
	"context"

	"serverless-blog-api/internal/models"
)

// Table provides access to the single table holding blog records.
// Records are keyed by their id attribute.
type Table interface {
	// Scan returns every record in the table in no particular order
	Scan(ctx context.Context) ([]models.Record, error)

	// Put inserts the record or fully replaces the record with the same id
	Put(ctx context.Context, record models.Record) error

	// Get returns the record with the given id, or ErrItemNotFound
	Get(ctx context.Context, id string) (models.Record, error)

	// Delete removes the record with the given id. Deleting a missing
	// record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the implementation
	Close() error
}

// Config represents configuration for table drivers
type Config struct {
	Driver      string `json:"driver" yaml:"driver"`         // "dynamodb", "sqlite" or "memory"
	TableName   string `json:"table_name" yaml:"table_name"` // Table name for every driver
	Region      string `json:"region" yaml:"region"`         // For dynamodb
	Endpoint    string `json:"endpoint" yaml:"endpoint"`     // Optional dynamodb endpoint override
	CreateTable bool   `json:"create_table" yaml:"create_table"`
	SQLitePath  string `json:"sqlite_path" yaml:"sqlite_path"` // For sqlite
}
