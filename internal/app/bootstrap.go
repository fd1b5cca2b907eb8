package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"team-formation/internal/config"
	"team-formation/internal/delivery/http/handler"
	"team-formation/internal/delivery/http/middleware"
	"team-formation/internal/delivery/http/routes"
	"team-formation/internal/ws"

	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// New builds the HTTP application over an existing container. hub may be nil,
// in which case the websocket route is not served.
func New(c *Container, hub *ws.Hub) *App {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	f := fiber.New(fiber.Config{
		AppName:     c.Config.App.AppName,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	registerGlobalMiddleware(f, c.Log)

	var wsHandler *ws.Handler
	if hub != nil {
		wsHandler = ws.NewHandler(hub, c.Log)
	}
	routes.NewRegistry(routes.Handlers{
		Records:   c.Records,
		Teams:     c.Teams,
		Lifecycle: c.Lifecycle,
		Health:    healthChecks(c),
		WS:        wsHandler,
	}).Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap wires the container, the websocket hub and the HTTP app. The
// returned cleanup stops the hub and releases the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	hub := ws.NewHub(log)
	hubCtx, stopHub := context.WithCancel(context.WithoutCancel(ctx))
	hubDone := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(hubDone)
	}()

	c, err := NewContainer(ctx, cfg, log, ws.NewNotifier(hub, log))
	if err != nil {
		stopHub()
		<-hubDone
		return nil, nil, err
	}

	cleanup := func() error {
		log.Info("stopping websocket hub", zap.Int("clients", hub.ClientCount()))
		stopHub()
		<-hubDone
		return c.Close()
	}
	return New(c, hub), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(log.Named("http"))
	errMw := middleware.NewErrorMiddleware(log.Named("http"))
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func healthChecks(c *Container) map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{"store": c.Ping}
	if strings.TrimSpace(c.Config.Redis.Addr) != "" {
		checks["redis"] = c.Cache.Ping
	}
	return checks
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", errors.New("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Fiber == nil {
		return nil
	}
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
