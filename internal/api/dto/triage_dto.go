package dto

import "github.com/spec-kit/support-copilot/internal/domain"

// Response status values of the dispatch envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every dispatch response.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// AnalyzeIssueRequest payload.
type AnalyzeIssueRequest struct {
	IssueDescription string `json:"issue_description"`
	CustomerID       string `json:"customer_id"`
	ProductID        string `json:"product_id"`
}

// AnalyzeIssueResponse data.
type AnalyzeIssueResponse struct {
	Severity domain.Severity `json:"severity"`
	Analysis domain.Analysis `json:"analysis"`
}

// GenerateTemplateRequest payload.
type GenerateTemplateRequest struct {
	IssueDescription string          `json:"issue_description"`
	Analysis         domain.Analysis `json:"analysis"`
}

// GenerateTemplateResponse data.
type GenerateTemplateResponse struct {
	Template string `json:"template"`
}

// SummarizeRequest payload.
type SummarizeRequest struct {
	IssueID int64 `json:"issue_id"`
}

// SummarizeResponse data.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
