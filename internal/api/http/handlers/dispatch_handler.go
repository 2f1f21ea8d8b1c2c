package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/api/dto"
	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/observability"
	"github.com/spec-kit/support-copilot/internal/service"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

// DispatchHandler serves the analyze/template/summarize operations inside the
// {status, data, error} envelope and flags responses that overran the time budget.
type DispatchHandler struct {
	triage  *service.TriageService
	budget  time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewDispatchHandler constructs handler.
func NewDispatchHandler(triage *service.TriageService, budget time.Duration, metrics *observability.Metrics, logger *zap.Logger) *DispatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DispatchHandler{triage: triage, budget: budget, metrics: metrics, logger: logger, now: time.Now}
}

// AnalyzeIssue POST /api/analyze_issue.
func (h *DispatchHandler) AnalyzeIssue(c *fiber.Ctx) error {
	start := h.now()
	var req dto.AnalyzeIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, errorutil.NewValidationError("invalid payload", nil))
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return h.fail(c, errorutil.NewValidationError("customer_id required", nil))
	}

	analysis, err := h.triage.AnalyzeIssue(c.UserContext(), req.IssueDescription, req.CustomerID, req.ProductID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respond(c, start, dto.AnalyzeIssueResponse{Severity: analysis.Severity, Analysis: analysis})
}

// GenerateTemplate POST /api/generate_template.
func (h *DispatchHandler) GenerateTemplate(c *fiber.Ctx) error {
	start := h.now()
	var req dto.GenerateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, errorutil.NewValidationError("invalid payload", nil))
	}
	if req.Analysis.Severity == "" {
		req.Analysis.Severity = domain.SeverityNormal
	}

	template := h.triage.GenerateTemplate(req.IssueDescription, req.Analysis)
	return h.respond(c, start, dto.GenerateTemplateResponse{Template: template})
}

// Summarize POST /api/summarize.
func (h *DispatchHandler) Summarize(c *fiber.Ctx) error {
	start := h.now()
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, errorutil.NewValidationError("invalid payload", nil))
	}
	if req.IssueID <= 0 {
		return h.fail(c, errorutil.NewValidationError("issue_id must be positive", nil))
	}

	summary, err := h.triage.Summarize(c.UserContext(), req.IssueID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respond(c, start, dto.SummarizeResponse{Summary: summary})
}

// Guard wraps a group middleware so its failures are reported inside the
// dispatch envelope like every other dispatch response.
func (h *DispatchHandler) Guard(middleware fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := middleware(c); err != nil {
			return h.fail(c, err)
		}
		return nil
	}
}

func (h *DispatchHandler) respond(c *fiber.Ctx, start time.Time, data any) error {
	envelope := dto.Envelope{Status: dto.StatusSuccess, Data: data}
	if elapsed := h.now().Sub(start); elapsed > h.budget {
		envelope.Status = dto.StatusError
		envelope.Error = budgetExceededMessage(h.budget)
		h.metrics.RecordBudgetOverrun()
		h.logger.Warn("dispatch response budget exceeded",
			zap.String("path", c.Path()),
			zap.Duration("elapsed", elapsed),
			zap.Duration("budget", h.budget))
	}
	return c.JSON(envelope)
}

func (h *DispatchHandler) fail(c *fiber.Ctx, err error) error {
	domainErr := errorutil.ToDomainError(translateError(err))
	h.metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		h.logger.Error("dispatch failed", zap.String("path", c.Path()), zap.Error(domainErr))
	}
	return c.Status(domainErr.HTTPStatus).JSON(dto.Envelope{
		Status: dto.StatusError,
		Data:   fiber.Map{},
		Error:  domainErr.Message,
		Code:   domainErr.Code,
	})
}

func budgetExceededMessage(budget time.Duration) string {
	return fmt.Sprintf("Response time exceeded %d seconds", int(budget/time.Second))
}
