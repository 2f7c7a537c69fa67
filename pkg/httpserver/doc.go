// Package httpserver runs an http.Handler with graceful shutdown and
// health probes.
//
// Server.Run listens on the configured address and blocks until the
// context is cancelled, SIGINT or SIGTERM arrives, or Shutdown is called.
// Listen errors are joined with ErrStart, shutdown errors with ErrShutdown.
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz
// probes. Readiness runs its named checks concurrently and reports 503 when
// any of them fails:
//
//	r.Get("/readyz", httpserver.ReadinessHandler(log, 3*time.Second,
//		httpserver.Check{Name: "mongo", Fn: mongoProvider.Ping},
//		httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
package httpserver
