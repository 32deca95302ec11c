package services

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/adapters/storage"
	"serverless-blog-api/internal/models"
)

// blogService implements the BlogService interface
type blogService struct {
	table  storage.Table
	logger *logrus.Logger
}

// NewBlogService creates a new blog service instance
func NewBlogService(table storage.Table, logger *logrus.Logger) BlogService {
	if logger == nil {
		logger = logrus.New()
	}
	return &blogService{
		table:  table,
		logger: logger,
	}
}

// GetAll lists every record in the table
func (s *blogService) GetAll(ctx context.Context) models.Result {
	records, err := s.table.Scan(ctx)
	if err != nil {
		s.logFailure("get_all", "", err)
		return models.NewMessageResult(http.StatusInternalServerError, models.PrefixGetFailed+err.Error())
	}

	if records == nil {
		records = []models.Record{}
	}

	return models.NewResult(http.StatusOK, records)
}

// Post inserts or replaces a record. The id attribute is not checked here;
// the table decides what happens to a record without one.
func (s *blogService) Post(ctx context.Context, record models.Record) models.Result {
	if err := s.table.Put(ctx, record); err != nil {
		s.logFailure("post", record.ID(), err)
		return models.NewMessageResult(http.StatusInternalServerError, models.PrefixCreateFailed+err.Error())
	}

	s.logger.WithField("id", record.ID()).Debug("Record stored")
	return models.OK()
}

// Get fetches one record by id
func (s *blogService) Get(ctx context.Context, id string) models.Result {
	record, err := s.table.Get(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return models.NewMessageResult(http.StatusNotFound, models.MessageItemNotFound)
		}
		s.logFailure("get", id, err)
		return models.NewMessageResult(http.StatusInternalServerError, models.PrefixGetFailed+err.Error())
	}

	return models.NewResult(http.StatusOK, record)
}

// Delete removes one record by id
func (s *blogService) Delete(ctx context.Context, id string) models.Result {
	if err := s.table.Delete(ctx, id); err != nil {
		s.logFailure("delete", id, err)
		return models.NewMessageResult(http.StatusInternalServerError, models.PrefixDeleteFailed+err.Error())
	}

	return models.OK()
}

func (s *blogService) logFailure(operation, id string, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"error":     err.Error(),
	}
	if id != "" {
		fields["id"] = id
	}
	if code := storage.ErrorCode(err); code != "" {
		fields["error_code"] = code
	}

	s.logger.WithFields(fields).Error("Store operation failed")
}
