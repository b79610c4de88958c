// Package folio serves portfolio pages with their interactive features
// running server-side: every page load becomes a page session that
// receives the browser's events and answers with the resulting state.
package folio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aydenstechdungeon/folio/fiber"
	"github.com/aydenstechdungeon/folio/routing"
	"github.com/aydenstechdungeon/folio/store"
	redisstore "github.com/aydenstechdungeon/folio/store/redis"
	"github.com/goccy/go-json"
	fiberpkg "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gopkg.in/yaml.v3"
)

// Version is the current version of folio.
const Version = "0.1.0"

// Config is the application configuration.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// AppName is reported by fiber.
	AppName string `yaml:"app_name"`
	// PagesDir holds the site's HTML pages.
	PagesDir string `yaml:"pages_dir"`
	// StaticDir is served under StaticPrefix when it exists.
	StaticDir    string `yaml:"static_dir"`
	StaticPrefix string `yaml:"static_prefix"`
	// DevMode enables request logging, stack traces in errors and page
	// reloading when files change.
	DevMode bool `yaml:"dev_mode"`

	// RedisURL selects redis for theme preferences. Empty keeps them in
	// memory.
	RedisURL string `yaml:"redis_url"`
	// PreferenceTTL is the lifetime of the visitor cookie and of the theme
	// preference stored for that visitor.
	PreferenceTTL time.Duration `yaml:"preference_ttl"`
	// SessionTTL is how long an idle page session is kept.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// Compress enables brotli/gzip response compression.
	Compress bool `yaml:"compress"`
	// MaxRequestBodySize caps request bodies, events included.
	MaxRequestBodySize int `yaml:"max_request_body_size"`

	// Contact form simulation timings.
	SendDelay      time.Duration `yaml:"send_delay"`
	NoticeDuration time.Duration `yaml:"notice_duration"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:               ":3000",
		AppName:            "folio",
		PagesDir:           "./pages",
		StaticDir:          "./static",
		StaticPrefix:       "/static",
		SessionTTL:         30 * time.Minute,
		PreferenceTTL:      365 * 24 * time.Hour,
		Compress:           true,
		MaxRequestBodySize: 64 * 1024,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// App is the folio application.
type App struct {
	// Config is the application configuration.
	Config Config
	// Registry serves the site's pages.
	Registry *routing.Registry
	// Fiber is the underlying Fiber app.
	Fiber *fiberpkg.App

	storage  store.Storage
	redis    *redisstore.Store
	sessions *sessions
	cancel   context.CancelFunc
}

// New creates a folio application. It connects to redis when RedisURL is
// set.
func New(config Config) (*App, error) {
	defaults := DefaultConfig()
	if config.Addr == "" {
		config.Addr = defaults.Addr
	}
	if config.AppName == "" {
		config.AppName = defaults.AppName
	}
	if config.PagesDir == "" {
		config.PagesDir = defaults.PagesDir
	}
	if config.StaticDir == "" {
		config.StaticDir = defaults.StaticDir
	}
	if config.StaticPrefix == "" {
		config.StaticPrefix = defaults.StaticPrefix
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = defaults.SessionTTL
	}
	if config.PreferenceTTL <= 0 {
		config.PreferenceTTL = defaults.PreferenceTTL
	}
	if config.MaxRequestBodySize <= 0 {
		config.MaxRequestBodySize = defaults.MaxRequestBodySize
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:   config,
		Registry: routing.NewRegistry(config.PagesDir),
		sessions: newSessions(config.SessionTTL),
		cancel:   cancel,
	}

	if config.RedisURL != "" {
		rs, err := redisstore.Open(ctx, config.RedisURL)
		if err != nil {
			cancel()
			return nil, err
		}
		app.redis = rs
		app.storage = rs
	} else {
		app.storage = store.NewMemoryStorage()
	}

	errConfig := fiber.DefaultErrorHandlerConfig()
	errConfig.DevMode = config.DevMode
	errConfig.OnError = func(c *fiberpkg.Ctx, e *fiber.AppError) {
		if e.StatusCode >= fiberpkg.StatusInternalServerError {
			log.Printf("folio: %s %s: %v", c.Method(), c.Path(), e)
		}
	}
	app.Fiber = fiberpkg.New(fiberpkg.Config{
		AppName:               config.AppName,
		BodyLimit:             config.MaxRequestBodySize,
		ErrorHandler:          fiber.ErrorHandler(errConfig),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: !config.DevMode,
	})

	app.setupMiddleware()
	app.setupRoutes()

	go app.pruneLoop(ctx)
	if config.DevMode {
		app.Registry.OnChange = func(name string) {
			log.Printf("folio: page %s changed", name)
		}
		go func() {
			if err := app.Registry.Watch(ctx, nil); err != nil {
				log.Printf("folio: page watcher stopped: %v", err)
			}
		}()
	}
	return app, nil
}

// setupMiddleware configures the middleware stack.
func (a *App) setupMiddleware() {
	a.Fiber.Use(recover.New())
	if a.Config.DevMode {
		a.Fiber.Use(logger.New())
	}
	if a.Config.Compress {
		a.Fiber.Use(fiber.BrotliGzipMiddleware(fiber.DefaultCompressionConfig()))
	}
	a.Fiber.Use(fiber.SecurityHeadersMiddleware())
	a.Fiber.Use(fiber.VisitorMiddleware(a.Config.PreferenceTTL))
	a.Fiber.Use(fiber.CSRFSetTokenMiddleware())
}

// setupRoutes configures the routes.
func (a *App) setupRoutes() {
	sessions := a.Fiber.Group(SessionPrefix, fiber.CSRFTokenMiddleware())
	sessions.Get("/:id", a.handleSessionHTML)
	sessions.Get("/:id/state", a.handleSessionState)
	sessions.Post("/:id/events", a.handleEvent)
	sessions.Delete("/:id", a.handleEndSession)

	if _, err := os.Stat(a.Config.StaticDir); err == nil {
		a.Fiber.Use(a.Config.StaticPrefix, filesystem.New(filesystem.Config{
			Root: http.Dir(a.Config.StaticDir),
		}))
	}
	a.Fiber.Get("/favicon.ico", func(c *fiberpkg.Ctx) error {
		return c.SendStatus(fiberpkg.StatusNoContent)
	})

	a.Fiber.Get("/*", a.handlePage)
	a.Fiber.Use(fiber.NotFoundHandler())
}

// Sessions returns the number of live page sessions.
func (a *App) Sessions() int {
	return a.sessions.len()
}

// pruner is a storage that only drops expired entries when asked.
type pruner interface {
	Prune() int
}

// prune drops expired page sessions and, for storages that need it,
// expired preferences.
func (a *App) prune() (sessions, preferences int) {
	sessions = a.sessions.prune()
	if p, ok := a.storage.(pruner); ok {
		preferences = p.Prune()
	}
	if a.Config.DevMode && sessions+preferences > 0 {
		log.Printf("folio: pruned %d sessions, %d preferences", sessions, preferences)
	}
	return sessions, preferences
}

func (a *App) pruneLoop(ctx context.Context) {
	interval := max(a.Config.SessionTTL/2, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.prune()
		}
	}
}

// Listen starts the application on the configured address.
func (a *App) Listen() error {
	log.Printf("folio %s starting on %s", Version, a.Config.Addr)
	return a.Fiber.Listen(a.Config.Addr)
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.cancel()
	err := a.Fiber.Shutdown()
	if a.redis != nil {
		if cerr := a.redis.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
