package handlers

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/adapters/storage"
	"serverless-blog-api/internal/models"
	"serverless-blog-api/internal/services"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService() services.BlogService {
	return services.NewBlogService(storage.NewMemoryTable(), quietLogger())
}

// brokenTable fails every operation
type brokenTable struct{ err error }

func (b brokenTable) Scan(ctx context.Context) ([]models.Record, error) { return nil, b.err }
func (b brokenTable) Put(ctx context.Context, record models.Record) error { return b.err }
func (b brokenTable) Get(ctx context.Context, id string) (models.Record, error) { return nil, b.err }
func (b brokenTable) Delete(ctx context.Context, id string) error { return b.err }
func (b brokenTable) Close() error { return nil }
