package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/osse101/casevault/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Storage *Storage
	LogFile *os.File
}

// GracefulShutdown stops the HTTP server first so no request is mid-flight
// when storage closes. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Storage != nil {
		slog.Info(LogMsgClosingStorage)
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)

	if components.LogFile != nil {
		if err := components.LogFile.Close(); err != nil {
			slog.Error(LogMsgLogFileCloseFailed, "error", err)
		}
	}
}
