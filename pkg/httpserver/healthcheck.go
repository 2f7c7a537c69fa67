package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/authbridge/pkg/logger"
)

// Check is a named readiness dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// LivenessHandler always answers 200 "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every check concurrently within timeout. It answers
// 200 "READY" when all pass and 503 "NOT_READY" otherwise. Each failing
// check is logged with its name.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, c := range checks {
			g.Go(func() error {
				if c.Fn == nil {
					return nil
				}
				if err := c.Fn(gctx); err != nil {
					if !errors.Is(err, context.Canceled) {
						log.ErrorContext(ctx, "readiness check failed",
							slog.String("check", c.Name),
							logger.Error(err),
							logger.Component("httpserver"),
						)
					}
					return err
				}
				return nil
			})
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := g.Wait(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
