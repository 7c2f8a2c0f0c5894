// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/streamsynth/internal/info"
	"github.com/mia-platform/streamsynth/internal/logger"
)

const (
	serviceName = "streamsynth"
	loggerName  = "streamsynth:server"

	synthRoutePath = "/synth"
)

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// Server is the HTTP facade of the synthesizer.
type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

type impServer struct {
	Config

	app *fiber.App
}

// NewServer builds the HTTP service from the environment configuration,
// mounting the status routes and the synthesis endpoint.
func NewServer(ctx context.Context) (Server, error) {
	cfg, err := LoadServerConfig()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		// ensure request bodies stay valid outside the handler lifecycle
		Immutable: true,
	})
	log := logger.FromContext(ctx)
	app.Use(logger.RequestMiddlewareLogger(log, []string{"/-/"}))

	statusRoutes(app, serviceName, info.Version)
	app.Post(synthRoutePath, synthHandler(ctx))

	return &impServer{
		app:    app,
		Config: *cfg,
	}, nil
}

func (s *impServer) Start() error {
	if err := s.app.Listen(fmt.Sprintf("%s:%s", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := logger.FromContext(ctx).WithName(loggerName)
	go func() {
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}

// statusRoutes mounts the liveness and version endpoints.
func statusRoutes(app *fiber.App, name, version string) {
	status := func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"name":    name,
			"status":  "OK",
			"version": version,
		})
	}

	app.Get("/-/healthz", status)
	app.Get("/-/ready", status)
}
