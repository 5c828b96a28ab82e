// Package web serves the VOXTEND REST API, the browser voice bridge and the
// dashboard status feed.
package web

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teslashibe/go-voxtend/pkg/bridge"
	"github.com/teslashibe/go-voxtend/pkg/centers"
	"github.com/teslashibe/go-voxtend/pkg/hub"
	"github.com/teslashibe/go-voxtend/pkg/reminder"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/tts"
)

// Version is reported by the health endpoint.
var Version = "0.1.0"

// Config configures the server.
type Config struct {
	Addr      string
	StaticDir string
	Debug     bool

	Catalog     *scheme.Catalog
	Centers     *centers.Directory
	Reminders   reminder.Store
	Synthesizer tts.Provider
	Bridge      *bridge.Hub

	// Now is the clock used for deadlines.
	Now func() time.Time

	Logger *slog.Logger
}

// Option configures the server.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) { c.Addr = addr }
}

// WithStaticDir serves the browser front end from dir.
func WithStaticDir(dir string) Option {
	return func(c *Config) { c.StaticDir = dir }
}

// WithDebug enables request logging.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithCatalog sets the scheme catalog.
func WithCatalog(cat *scheme.Catalog) Option {
	return func(c *Config) { c.Catalog = cat }
}

// WithCenters sets the service center directory.
func WithCenters(d *centers.Directory) Option {
	return func(c *Config) { c.Centers = d }
}

// WithReminders sets the reminder store.
func WithReminders(s reminder.Store) Option {
	return func(c *Config) { c.Reminders = s }
}

// WithSynthesizer enables POST /api/tts.
func WithSynthesizer(p tts.Provider) Option {
	return func(c *Config) { c.Synthesizer = p }
}

// WithBridge mounts the browser voice bridge.
func WithBridge(b *bridge.Hub) Option {
	return func(c *Config) { c.Bridge = b }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Server is the HTTP front end.
type Server struct {
	cfg       *Config
	app       *fiber.App
	logger    *slog.Logger
	statusHub *hub.Hub
}

// NewServer builds the fiber app and registers every route.
func NewServer(opts ...Option) *Server {
	cfg := &Config{
		Addr:    ":8080",
		Catalog: scheme.Default(),
		Centers: centers.Default(),
		Now:     time.Now,
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{
		cfg:       cfg,
		logger:    cfg.Logger.With("component", "web"),
		statusHub: hub.New("status", cfg.Logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "voxtend",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	if cfg.Debug {
		app.Use(logger.New())
	}

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/languages", s.handleLanguages)
	api.Get("/categories", s.handleCategories)
	api.Get("/schemes", s.handleSchemes)
	api.Get("/schemes/:id", s.handleScheme)
	api.Post("/tts", s.handleTTS)
	api.Get("/reminders", s.handleListReminders)
	api.Post("/reminders", s.handleAddReminder)
	api.Get("/reminders/due", s.handleDueReminders)
	api.Delete("/reminders/:schemeId", s.handleRemoveReminder)
	api.Get("/centers", s.handleCenters)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if cfg.Bridge != nil {
		cfg.Bridge.RegisterRoutes(app)
		cfg.Bridge.RegisterAPIRoutes(api)
	}
	app.Get("/ws/status", requireUpgrade, websocket.New(s.handleStatusWS))

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// StatusHub returns the hub that feeds /ws/status.
func (s *Server) StatusHub() *hub.Hub { return s.statusHub }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.statusHub.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- s.app.Listen(s.cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// handleError renders every error as {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
