package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// LoggerExtractor adds the request ID from the context to every log record.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		attr := logger.RequestID(FromContext(ctx))
		return attr, attr.Key != ""
	}
}
