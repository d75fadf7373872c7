package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"reports/src/api"
	"reports/src/config"
	"reports/src/utils"
	"reports/src/worker"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("Error while loading .env")
	}

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}
	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.File)

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Fatal("Error while running")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	var onShutdown func()
	if cfg.Service.Type == config.WORKER {
		server, err := worker.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := server.Controller.LoadAllReportSchedule(context.Background()); err != nil {
			logger.WithError(err).Error("Initial schedule load failed")
		}
		httpServer = worker.NewHTTPServer(server, cfg.Service.Port)
		onShutdown = server.Controller.Stop
	} else {
		server, err := api.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer func() {
			stop()
			cancel()
			close(errC)
		}()

		if onShutdown != nil {
			onShutdown()
		}
		httpServer.SetKeepAlivesEnabled(false)
		if err := httpServer.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}
	}()

	go func() {
		logger.WithFields(logrus.Fields{
			"service": cfg.Service.Type,
			"port":    cfg.Service.Port,
		}).Info("Starting server")

		// ListenAndServe always returns a non-nil error. After Shutdown or Close
		// the returned error is ErrServerClosed.
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
