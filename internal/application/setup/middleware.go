package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/brachisto/brachisto-go/internal/application/common"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
)

// LoggingMiddleware logs every request dispatched through the mediator
// with its handling duration and outcome
func LoggingMiddleware(logger common.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)
		metadata := map[string]interface{}{
			"request":     fmt.Sprintf("%T", request),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("error", "request failed", metadata)
			return nil, err
		}
		logger.Log("debug", "request handled", metadata)
		return response, nil
	}
}
