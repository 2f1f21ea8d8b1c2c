package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-copilot/internal/api/dto"
	"github.com/spec-kit/support-copilot/internal/auth"
	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/service"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

// IssuesHandler manages intake and operator endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// FileIssue POST /issues.
func (h *IssuesHandler) FileIssue(c *fiber.Ctx) error {
	var req dto.FileIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CustomerID) == "" || strings.TrimSpace(req.ProductID) == "" {
		return errorutil.NewValidationError("customer_id and product_id required", nil)
	}

	result, err := h.service.FileIssue(c.UserContext(), service.FileIssueInput{
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Description: req.IssueDescription,
	})
	if err != nil {
		return translateError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FileIssueResponse{
		Issue:    issueResponse(result.Issue),
		Analysis: result.Analysis,
		Template: result.Template,
		Summary:  result.Summary,
	}})
}

// GetIssue GET /issues/:id.
func (h *IssuesHandler) GetIssue(c *fiber.Ctx) error {
	id, err := issueIDParam(c)
	if err != nil {
		return err
	}
	issue, err := h.service.GetIssue(c.UserContext(), id)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(fiber.Map{"data": issueResponse(issue)})
}

// AddMessage POST /issues/:id/messages.
func (h *IssuesHandler) AddMessage(c *fiber.Ctx) error {
	id, err := issueIDParam(c)
	if err != nil {
		return err
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return errorutil.NewValidationError("message required", nil)
	}

	msg, err := h.service.AddMessage(c.UserContext(), id, req.Sender, req.Message)
	if err != nil {
		return translateError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.MessageResponse{
		ID:        msg.ID,
		IssueID:   msg.IssueID,
		Message:   msg.Message,
		Sender:    msg.Sender,
		Timestamp: msg.Timestamp,
	}})
}

// ResolveIssue POST /issues/:id/resolve.
func (h *IssuesHandler) ResolveIssue(c *fiber.Ctx) error {
	id, err := issueIDParam(c)
	if err != nil {
		return err
	}
	var req dto.ResolveIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	var resolvedBy string
	if principal, ok := auth.PrincipalFromContext(c); ok {
		resolvedBy = principal.ClientID
	}

	issue, err := h.service.ResolveIssue(c.UserContext(), id, req.Resolution, resolvedBy)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(fiber.Map{"data": issueResponse(issue)})
}

func issueIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorutil.NewValidationError("invalid issue id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func issueResponse(issue *domain.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:          issue.ID,
		CustomerID:  issue.CustomerID,
		Description: issue.Description,
		CreatedAt:   issue.CreatedAt,
		Severity:    issue.Severity,
		Status:      issue.Status,
		ProductID:   issue.ProductID,
		Resolution:  issue.Resolution,
	}
}
