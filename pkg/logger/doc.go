// Package logger builds configured log/slog loggers for the client.
//
// Text format suits interactive use, JSON suits log aggregation when the
// client runs embedded in another service. Level and format map directly
// from the LOG_LEVEL / LOG_FORMAT configuration values.
package logger
