package handlers

import (
	"net/http"

	"serverless-blog-api/internal/models"
)

// decodeBody parses a request body into a record. On failure it returns the
// 400 result both adapters answer with.
func decodeBody(body []byte) (models.Record, *models.Result) {
	record, err := models.DecodeRecord(body)
	if err != nil {
		result := models.NewMessageResult(http.StatusBadRequest, models.PrefixInvalidBody+err.Error())
		return nil, &result
	}
	return record, nil
}
