package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/rs/zerolog"

	"github.com/bloodcare/bloodcare/auth"
	"github.com/bloodcare/bloodcare/internal/config"
	"github.com/bloodcare/bloodcare/store"
)

// ApiResponse is the envelope for successful JSON responses
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// FailBody is the envelope rejected requests are answered with
type FailBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Server struct {
	app    *fiber.App
	cfg    config.Config
	log    zerolog.Logger
	auther *auth.Auther
	repo   store.RepositoryManager
}

func New(cfg config.Config, log zerolog.Logger, auther *auth.Auther, repo store.RepositoryManager) *Server {
	s := &Server{
		cfg:    cfg,
		log:    log,
		auther: auther,
		repo:   repo,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      cfg.GetAppName(),
		ErrorHandler: s.handleError,
	})

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.GetPort())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError translates failures into transport responses. Rich errors map
// by category; anything else is a 500 that gets logged before its message
// reaches the caller.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(FailBody{
			Status:  "fail",
			Message: fiberErr.Message,
		})
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusForCategory(richErr)

	if status >= fiber.StatusInternalServerError {
		s.log.Error().
			Str("category", string(richErr.Category)).
			Str("path", c.OriginalURL()).
			Str("details", print.MaybePrettyJSON(richErr.Metadata)).
			Err(err).
			Msg("request failed")

		return c.Status(status).JSON(FailBody{
			Status:  "error",
			Message: "Internal server error: " + richErr.Message,
		})
	}

	return c.Status(status).JSON(FailBody{
		Status:  "fail",
		Message: richErr.Message,
	})
}

func statusForCategory(richErr *errors.Error) int {
	switch richErr.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		if richErr.Code >= fiber.StatusBadRequest {
			return richErr.Code
		}
		return fiber.StatusInternalServerError
	}
}
