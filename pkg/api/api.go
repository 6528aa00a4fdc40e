// Package api implements the HTTP API for evaluating expressions and
// browsing the evaluation history.
package api

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// MaxExpressionLength is the longest expression accepted by the API.
const MaxExpressionLength = expr.MaxExpressionLength

// Server is the API server.
type Server struct {
	app   *fiber.App
	store *store.Store
	cache *expr.Cache
}

// Config holds optional server settings.
type Config struct {
	// RequestLog writes one access log line per request to stdout.
	RequestLog bool
}

// New creates a new API server recording evaluations into s.
func New(s *store.Store, cfg Config) *Server {
	srv := &Server{store: s, cache: expr.NewCache(0)}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Use(recover.New())
	if cfg.RequestLog {
		app.Use(logger.New())
	}

	app.Get("/healthz", srv.health)

	app.Post("/v1/evaluate", srv.evaluate)
	app.Post("/v1/postfix", srv.postfix)

	app.Get("/v1/evaluations", srv.listEvaluations)
	app.Get("/v1/evaluations/:id", srv.getEvaluation)
	app.Delete("/v1/evaluations", srv.clearEvaluations)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) health(c *fiber.Ctx) error {
	hits, misses := s.cache.Stats()
	return c.JSON(fiber.Map{
		"status":      "ok",
		"evaluations": s.store.Len(),
		"cache":       fiber.Map{"hits": hits, "misses": misses},
	})
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	a, evalErr := s.cache.Trace(req.Expression)
	rec := s.store.Add(store.Entry{
		Expression: req.Expression,
		Normalized: a.Normalized,
		Postfix:    a.PostfixString(),
		Result:     a.Result,
		Err:        evalErr,
	})
	if evalErr != nil {
		log.Printf("evaluation %s failed: %v", rec.ID, evalErr)
		return c.Status(400).JSON(fiber.Map{
			"id":    rec.ID,
			"error": errorBody(400, evalErr),
		})
	}
	return c.JSON(rec)
}

func (s *Server) postfix(c *fiber.Ctx) error {
	req, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	out, err := expr.ToPostfixString(req.Expression)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": errorBody(400, err)})
	}
	return c.JSON(fiber.Map{
		"expression": req.Expression,
		"postfix":    out,
	})
}

func (s *Server) listEvaluations(c *fiber.Ctx) error {
	records := s.store.Last(c.QueryInt("limit", -1))
	return c.JSON(fiber.Map{
		"evaluations": records,
	})
}

func (s *Server) getEvaluation(c *fiber.Ctx) error {
	rec, err := s.store.Get(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    404,
				"message": err.Error(),
				"status":  "NOT_FOUND",
			},
		})
	}
	return c.JSON(rec)
}

func (s *Server) clearEvaluations(c *fiber.Ctx) error {
	s.store.Clear()
	return c.SendStatus(204)
}

func parseRequest(c *fiber.Ctx) (*expressionRequest, error) {
	var req expressionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %v", err)
	}
	if len(req.Expression) > MaxExpressionLength {
		return nil, fmt.Errorf("expression exceeds maximum length of %d characters", MaxExpressionLength)
	}
	return &req, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(400).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    400,
			"message": err.Error(),
			"status":  "INVALID_ARGUMENT",
		},
	})
}

func errorBody(code int, err error) fiber.Map {
	return fiber.Map{
		"code":    code,
		"kind":    types.KindOf(err),
		"message": err.Error(),
		"status":  "INVALID_ARGUMENT",
	}
}
