// Package testutil holds small helpers shared across test packages.
package testutil

import (
	"io"
	"log/slog"

	"github.com/skillswap/skillswap-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards all output, for handing to
// services and sweepers under test.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}
