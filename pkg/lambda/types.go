package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"serverless-blog-api/internal/models"
)

// ContentTypeJSON is the content type of every envelope body
const ContentTypeJSON = "application/json"

// Headers returns the fixed headers carried by every envelope
func Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "*",
		"Content-Type":                 ContentTypeJSON,
	}
}

// NewResponse wraps a status code and payload into an API Gateway proxy
// response with a JSON body and the fixed headers
func NewResponse(statusCode int, payload interface{}) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to marshal response body: %w", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    Headers(),
		Body:       string(body),
	}, nil
}

// FromResult wraps a storage access result into a proxy response
func FromResult(result models.Result) (events.APIGatewayProxyResponse, error) {
	return NewResponse(result.StatusCode, result.Payload)
}

// MessageResponse builds a proxy response with a {"message": ...} body
func MessageResponse(statusCode int, message string) (events.APIGatewayProxyResponse, error) {
	return NewResponse(statusCode, models.Message{Message: message})
}

// NotFound is the response for events no handler matches
func NotFound() (events.APIGatewayProxyResponse, error) {
	return MessageResponse(http.StatusNotFound, models.MessageNotFound)
}

// HandlerFunc is the signature of an API Gateway proxy handler
type HandlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
