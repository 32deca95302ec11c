package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/adapters/storage"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	BlogService BlogService

	table storage.Table
}

// NewServiceContainer creates a new service container on top of the given table
func NewServiceContainer(table storage.Table, logger *logrus.Logger) (*ServiceContainer, error) {
	if table == nil {
		return nil, fmt.Errorf("storage table cannot be nil")
	}

	return &ServiceContainer{
		BlogService: NewBlogService(table, logger),
		table:       table,
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.BlogService == nil {
		return fmt.Errorf("blog service is nil")
	}
	return nil
}

// Close releases the table behind the services
func (sc *ServiceContainer) Close() error {
	if sc.table == nil {
		return nil
	}
	if err := sc.table.Close(); err != nil {
		return fmt.Errorf("failed to close storage table: %w", err)
	}
	return nil
}
