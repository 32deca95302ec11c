package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/models"
	"serverless-blog-api/internal/services"
	"serverless-blog-api/pkg/lambda"
)

// Operation names, as used in the Lambda handler setting
const (
	OperationGetAll = "get_all"
	OperationPost   = "post"
	OperationGet    = "get"
	OperationDelete = "delete"
)

// LambdaHandler exposes the blog operations as API Gateway proxy handlers
type LambdaHandler struct {
	blogService services.BlogService
	logger      *logrus.Logger
}

// NewLambdaHandler creates a new Lambda handler
func NewLambdaHandler(blogService services.BlogService, logger *logrus.Logger) *LambdaHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &LambdaHandler{
		blogService: blogService,
		logger:      logger,
	}
}

// HandleGetAll lists every record
func (h *LambdaHandler) HandleGetAll(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent(OperationGetAll, req)
	return lambda.FromResult(h.blogService.GetAll(ctx))
}

// HandlePost stores the record in the request body, which API Gateway may
// deliver base64 encoded
func (h *LambdaHandler) HandlePost(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent(OperationPost, req)

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return lambda.MessageResponse(http.StatusBadRequest, models.PrefixInvalidBody+err.Error())
		}
		body = decoded
	}

	record, invalid := decodeBody(body)
	if invalid != nil {
		return lambda.FromResult(*invalid)
	}

	return lambda.FromResult(h.blogService.Post(ctx, record))
}

// HandleGet fetches the record named by the id path parameter
func (h *LambdaHandler) HandleGet(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent(OperationGet, req)
	return lambda.FromResult(h.blogService.Get(ctx, req.PathParameters["id"]))
}

// HandleDelete deletes the record named by the id path parameter
func (h *LambdaHandler) HandleDelete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logEvent(OperationDelete, req)
	return lambda.FromResult(h.blogService.Delete(ctx, req.PathParameters["id"]))
}

// HandlerFor returns the handler for an operation name. Handler settings
// such as "blog.get_all" are matched on the part after the last dot.
func (h *LambdaHandler) HandlerFor(name string) (lambda.HandlerFunc, bool) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	switch name {
	case OperationGetAll:
		return h.HandleGetAll, true
	case OperationPost:
		return h.HandlePost, true
	case OperationGet:
		return h.HandleGet, true
	case OperationDelete:
		return h.HandleDelete, true
	default:
		return nil, false
	}
}

// Route dispatches an event by method and path, for deployments that send
// every route to one function
func (h *LambdaHandler) Route(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	route, id := matchRoute(req)

	if id != "" {
		params := make(map[string]string, len(req.PathParameters)+1)
		for k, v := range req.PathParameters {
			params[k] = v
		}
		params["id"] = id
		req.PathParameters = params
	}

	switch {
	case req.HTTPMethod == http.MethodGet && route == "/":
		return lambda.MessageResponse(http.StatusOK, models.MessageOK)
	case req.HTTPMethod == http.MethodGet && route == "/blog":
		return h.HandleGetAll(ctx, req)
	case req.HTTPMethod == http.MethodPost && route == "/blog":
		return h.HandlePost(ctx, req)
	case req.HTTPMethod == http.MethodGet && route == "/blog/{id}":
		return h.HandleGet(ctx, req)
	case req.HTTPMethod == http.MethodDelete && route == "/blog/{id}":
		return h.HandleDelete(ctx, req)
	default:
		h.logger.WithFields(logrus.Fields{
			"method": req.HTTPMethod,
			"path":   req.Path,
		}).Warn("No route for event")
		return lambda.NotFound()
	}
}

// matchRoute resolves the route template of an event and the id it names.
// The API Gateway resource is preferred; the raw path is the fallback for
// proxy resources.
func matchRoute(req events.APIGatewayProxyRequest) (string, string) {
	switch req.Resource {
	case "/", "/blog":
		return req.Resource, ""
	case "/blog/{id}":
		return req.Resource, req.PathParameters["id"]
	}

	path := strings.TrimSuffix(req.Path, "/")
	switch {
	case path == "":
		return "/", ""
	case path == "/blog":
		return "/blog", ""
	case strings.HasPrefix(path, "/blog/"):
		id := strings.TrimPrefix(path, "/blog/")
		if id != "" && !strings.Contains(id, "/") {
			return "/blog/{id}", id
		}
	}

	return "", ""
}

func (h *LambdaHandler) logEvent(operation string, req events.APIGatewayProxyRequest) {
	h.logger.WithFields(logrus.Fields{
		"operation":  operation,
		"request_id": req.RequestContext.RequestID,
		"event":      req,
	}).Info("Handling event")
}
