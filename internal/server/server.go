package server

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nao1215/corpusscope/internal/artifact"
	"github.com/nao1215/corpusscope/internal/chart"
	"github.com/nao1215/corpusscope/internal/database"
	"github.com/nao1215/corpusscope/internal/model"
	"github.com/nao1215/corpusscope/internal/page"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Pages     *page.Renderer
	Charts    *chart.Renderer
	Artifacts *artifact.Store
	// Database is pinged by /healthz. Nil skips the check.
	Database *database.Store
	Logger   *slog.Logger
	// Version is reported by /healthz.
	Version string
}

// Server is the dashboard HTTP server.
type Server struct {
	app    *fiber.App
	logger *slog.Logger
}

// New creates a Server and registers its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "corpusscope",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(requestID())
	app.Use(requestLogger(logger))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/pages/"+page.NameIntro, fiber.StatusFound)
	})
	app.Get("/healthz", health(opts.Database, opts.Version))

	(&PageAPI{Router: app.Group("/api"), Pages: opts.Pages}).Register()
	(&DashboardAPI{Router: app, Pages: opts.Pages, Charts: opts.Charts, Artifacts: opts.Artifacts}).Register()

	return &Server{app: app, logger: logger}
}

// health reports the version and whether the database answers a ping.
func health(db *database.Store, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(fiber.Map{"status": "ok", "version": version})
		}
		if err := db.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unavailable",
				"version":  version,
				"database": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "version": version, "database": "ok"})
	}
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", "address", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// selection parses the query string of the request.
func selection(c *fiber.Ctx) (model.Selection, error) {
	v, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return model.Selection{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return model.ParseSelection(v)
}

// formSelection parses a query submitted by the sidebar form, where the
// books of the sentence page arrive as one "; "-separated field.
func formSelection(c *fiber.Ctx) (model.Selection, error) {
	v, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return model.Selection{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if books, ok := v[model.ParamBook]; ok {
		split := []string{}
		for _, b := range books {
			split = append(split, strings.Split(b, ";")...)
		}
		v[model.ParamBook] = split
	}
	return model.ParseSelection(v)
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, model.ErrUnknownPage), errors.Is(err, model.ErrUnknownDomain):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := statusOf(err)
		id := requestIDOf(c)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", "request_id", id, "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(errorResponse{Error: err.Error(), RequestID: id})
	}
}
