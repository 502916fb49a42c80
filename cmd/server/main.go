package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	config.SetLogLevel()

	app, cfg, services, err := internal.SetupApp()
	if err != nil {
		slog.Error("Failed to set up app", "error", err)
		os.Exit(1)
	}

	if err = serve(app, cfg.ServerHost+":"+cfg.ServerPort, services); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// serve listens until the app is shut down by a signal. Services are closed before it returns.
func serve(app *fiber.App, address string, services io.Closer) (err error) {
	defer func() {
		if closeErr := services.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-signals:
			slog.Info("Shutting down")
			if err := app.Shutdown(); err != nil {
				slog.Error("Failed to shut down", "error", err)
			}
		case <-done:
		}
	}()

	return app.Listen(address)
}
