package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID on requests and responses
const RequestIDHeader = "X-Request-ID"

// maxLoggedBody bounds the request bodies copied into debug logs
const maxLoggedBody = 10 * 1024

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging with request context
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		debug := logger.IsLevelEnabled(logrus.DebugLevel)

		var requestBody []byte
		if debug && c.Request.Body != nil && c.Request.ContentLength >= 0 && c.Request.ContentLength < maxLoggedBody {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var responseBodyWriter *responseWriter
		if debug {
			responseBodyWriter = &responseWriter{
				ResponseWriter: c.Writer,
				body:           bytes.NewBufferString(""),
			}
			c.Writer = responseBodyWriter
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"request_id":    c.GetString(RequestIDKey),
			"operation":     operationName(c.Request.Method, c.FullPath()),
			"method":        c.Request.Method,
			"path":          path,
			"status_code":   status,
			"latency_ms":    float64(latency.Nanoseconds()) / 1000000,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"response_size": c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = raw
		}

		if id := c.Param("id"); id != "" {
			fields["id"] = id
		}

		if debug {
			if len(requestBody) > 0 {
				fields["request_body"] = string(requestBody)
			}
			if status >= 400 && responseBodyWriter.body.Len() < 1024 {
				fields["response_body"] = responseBodyWriter.body.String()
			}
		}

		switch {
		case status >= 500:
			logger.WithFields(fields).Error("Server error")
		case status >= 400:
			logger.WithFields(fields).Warn("Client error")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// operationName maps a matched route to the storage operation it serves
func operationName(method, route string) string {
	hasID := strings.Contains(route, ":id")
	switch {
	case method == http.MethodGet && route == "/blog":
		return "get_all"
	case method == http.MethodPost && route == "/blog":
		return "post"
	case method == http.MethodGet && hasID:
		return "get"
	case method == http.MethodDelete && hasID:
		return "delete"
	case route == "":
		return "unmatched"
	default:
		return "other"
	}
}
