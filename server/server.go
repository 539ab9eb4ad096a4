package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"betbroker/config"
)

// Server is the HTTP front of the broker
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds the fiber app and mounts all routes
func New(cfg *config.Config, h *Handler) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "betbroker",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(RequestID())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", UserAuth())
	api.Post("/bets", h.PlaceBet)
	api.Get("/bets", h.ListBets)
	api.Get("/bets/recommended", h.GetRecommendedBet)
	api.Post("/bets/win", h.ResolveWin)
	api.Get("/bets/:id", h.GetBet)
	api.Get("/balance", h.GetBalance)
	api.Post("/balance/sync", h.SyncBalance)
	api.Get("/transactions", h.ListTransactions)
	api.Get("/account", h.GetAccount)

	return &Server{app: app, cfg: cfg}
}

// App exposes the fiber app, used by handler tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start blocks serving HTTP until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.cfg.HTTPHost, s.cfg.HTTPPort)
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
