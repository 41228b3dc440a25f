// Package logger builds the zap logger shared by the server and the CLI.
//
// Level "debug" selects zap's development preset; other levels use the
// production preset. Format "console" prints colored lines for terminals and
// "json" is meant for log shippers. Every entry carries a service field.
//
// Handlers derive request loggers with WithRayID, or WithCurso when the route
// has a :curso parameter:
//
//	log := logger.WithCurso(h.service.logger, c)
//	log.Warn("Approve failed", zap.Error(err))
package logger
