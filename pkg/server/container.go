package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/adapters/storage"
	"serverless-blog-api/internal/config"
	"serverless-blog-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	BlogService services.BlogService

	// Internal dependencies
	table    storage.Table
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container. The store
// client is built once here and shared by every request.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := NewLogger(cfg)

	factory := storage.NewFactory(logger)
	table, err := factory.Create(ctx, &storage.Config{
		Driver:      cfg.Store.Driver,
		TableName:   cfg.Store.TableName,
		Region:      cfg.Store.Region,
		Endpoint:    cfg.Store.Endpoint,
		CreateTable: cfg.Store.CreateTable,
		SQLitePath:  cfg.Store.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage table: %w", err)
	}

	return newContainer(cfg, logger, table)
}

func newContainer(cfg *config.Config, logger *logrus.Logger, table storage.Table) (*Container, error) {
	serviceContainer, err := services.NewServiceContainer(table, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	if err := serviceContainer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		BlogService: serviceContainer.BlogService,
		table:       table,
		services:    serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}

	return nil
}
