package dto

import (
	"time"

	"github.com/spec-kit/support-copilot/internal/domain"
)

// FileIssueRequest payload.
type FileIssueRequest struct {
	CustomerID       string `json:"customer_id"`
	ProductID        string `json:"product_id"`
	IssueDescription string `json:"issue_description"`
}

// IssueResponse represents a stored issue.
type IssueResponse struct {
	ID          int64              `json:"id"`
	CustomerID  string             `json:"customer_id"`
	Description string             `json:"issue_description"`
	CreatedAt   time.Time          `json:"created_at"`
	Severity    domain.Severity    `json:"severity"`
	Status      domain.IssueStatus `json:"status"`
	ProductID   string             `json:"product_id"`
	Resolution  *string            `json:"resolution"`
}

// FileIssueResponse is the intake result.
type FileIssueResponse struct {
	Issue    IssueResponse   `json:"issue"`
	Analysis domain.Analysis `json:"analysis"`
	Template string          `json:"template"`
	Summary  string          `json:"summary"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Message string        `json:"message"`
	Sender  domain.Sender `json:"sender"`
}

// MessageResponse represents a conversation message.
type MessageResponse struct {
	ID        int64         `json:"id"`
	IssueID   int64         `json:"issue_id"`
	Message   string        `json:"message"`
	Sender    domain.Sender `json:"sender"`
	Timestamp time.Time     `json:"timestamp"`
}

// ResolveIssueRequest payload.
type ResolveIssueRequest struct {
	Resolution string `json:"resolution"`
}
