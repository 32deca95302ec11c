package services

import (
	"context"

	"serverless-blog-api/internal/models"
)

// BlogService defines the storage access operations shared by every entry
// point. Each operation returns a Result (status code and payload) and never
// an error: store failures are already translated into 404/500 results.
type BlogService interface {
	// GetAll lists every record in the table
	GetAll(ctx context.Context) models.Result

	// Post inserts the record or fully replaces the one with the same id
	Post(ctx context.Context, record models.Record) models.Result

	// Get fetches one record by id
	Get(ctx context.Context, id string) models.Result

	// Delete removes one record by id; deleting a missing id succeeds
	Delete(ctx context.Context, id string) models.Result
}
