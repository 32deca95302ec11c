package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"serverless-blog-api/internal/config"
	"serverless-blog-api/internal/handlers"
	"serverless-blog-api/pkg/lambda"
	"serverless-blog-api/pkg/server"
)

var container *server.Container

func init() {
	var err error
	container, err = lambda.GetConnectionManager().GetContainer(context.Background())
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	h := handlers.NewLambdaHandler(container.BlogService, container.Logger)

	// One function per operation names the operation in its handler
	// setting; otherwise every route is served by this function
	serverless := config.GetServerlessConfig()
	if handler, ok := h.HandlerFor(serverless.Handler); ok {
		container.Logger.WithField("handler", serverless.Handler).Info("Starting single operation function")
		awslambda.StartWithOptions(handler, awslambda.WithEnableSIGTERM(shutdown))
		return
	}

	container.Logger.WithField("function", serverless.FunctionName).Info("Starting routed function")
	awslambda.StartWithOptions(h.Route, awslambda.WithEnableSIGTERM(shutdown))
}

// shutdown releases the container when the execution environment is
// torn down
func shutdown() {
	if err := lambda.GetConnectionManager().Cleanup(); err != nil {
		container.Logger.WithError(err).Error("Failed to release container")
		return
	}
	container.Logger.Info("Container released")
}
