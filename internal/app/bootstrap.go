package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intern-match/internal/config"
	"intern-match/internal/delivery/http/handler"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/delivery/http/routes"
	"intern-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

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

// Bootstrap builds the container and the HTTP app. The returned cleanup
// closes everything the container opened.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	errMw := middleware.NewErrorMiddleware(c.Log)
	app.Use(errMw.Middleware())

	accessLog := middleware.NewAccessLogMiddleware(c.Log)
	app.Use(accessLog.Middleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins: c.Config.CORS.AllowedOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))
}

func registerRoutes(app *fiber.App, c *Container) {
	auth := middleware.NewAuthMiddleware(c.JWT)
	chatLimit := middleware.RateLimit(c.Limiter, "chat", c.Config.Chat.RateLimit, c.Config.Chat.RateWindow)

	h := routes.Handlers{
		Health:          handler.NewHealthHandler(c),
		Auth:            handler.NewAuthHandler(c.Auth),
		Profile:         handler.NewProfileHandler(c.Profiles),
		Internships:     handler.NewInternshipHandler(c.Internships),
		Recommendations: handler.NewRecommendationHandler(c.Recommendations),
		Applications:    handler.NewApplicationHandler(c.Ledger),
		Bookmarks:       handler.NewBookmarkHandler(c.Ledger),
		Chat:            handler.NewChatHandler(c.Chat),
		Admin:           handler.NewAdminHandler(c.Ledger, c.Internships),
		WS:              ws.NewHandler(c.Hub, c.JWT, c.Config.CORS.AllowedOrigins, c.Log),
	}
	routes.NewRegistry(h, auth, chatLimit).Register(app)
}

// Run starts the hub and serves HTTP until ctx is cancelled, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	addr, err := ListenAddr(a.Container.Config.App.HTTPPort)
	if err != nil {
		return err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.Container.Hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	a.Container.Log.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
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
