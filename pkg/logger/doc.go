// Package logger builds *slog.Logger instances with functional options and
// keeps attribute names consistent across authbridge.
//
// New selects a text or JSON handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which runs ContextExtractor callbacks on
// every record. This is how request ids stored by pkg/requestid end up on
// each log line without passing them around.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "authbridge"),
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "sign in succeeded",
//		logger.Operation("sign_in"),
//		logger.Email(email),
//	)
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// is safe whether or not err is set.
package logger
