package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

const retryDrainInterval = time.Minute

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap assembles the container and app and starts the background
// workers. The returned cleanup stops the workers and releases the
// container.
func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}

	application := New(c)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run()
	go c.Dispatcher.RunRetryLoop(ctx, retryDrainInterval)

	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return application, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(routes.Deps{
		Config:     c.Config,
		DB:         c.DB,
		Cache:      c.Cache,
		Dispatcher: c.Dispatcher,
		Hub:        c.Hub,
		Logger:     c.Logger,
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
