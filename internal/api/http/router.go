package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-copilot/internal/api/http/handlers"
	"github.com/spec-kit/support-copilot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Dispatch       *handlers.DispatchHandler
	Issues         *handlers.IssuesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	api := app.Group("/api", cfg.Dispatch.Guard(cfg.AuthMiddleware.Handle))
	api.Post("/analyze_issue", cfg.Dispatch.AnalyzeIssue)
	api.Post("/generate_template", cfg.Dispatch.GenerateTemplate)
	api.Post("/summarize", cfg.Dispatch.Summarize)

	issues := app.Group("/issues", cfg.AuthMiddleware.Handle)
	issues.Post("/", cfg.Issues.FileIssue)
	issues.Get("/:id", cfg.Issues.GetIssue)
	issues.Post("/:id/messages", cfg.Issues.AddMessage)
	issues.Post("/:id/resolve", cfg.Issues.ResolveIssue)
}
