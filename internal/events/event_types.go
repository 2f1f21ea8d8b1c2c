package events

import (
	"time"

	"github.com/spec-kit/support-copilot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueFiled       EventType = "issue_filed"
	EventIssueResolved    EventType = "issue_resolved"
	EventMessageAdded     EventType = "message_added"
	EventCriticalDetected EventType = "critical_detected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IssueID    int64       `json:"issue_id"`
	CustomerID string      `json:"customer_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// IssueFiledPayload payload.
type IssueFiledPayload struct {
	ProductID       string          `json:"product_id"`
	Severity        domain.Severity `json:"severity"`
	PastIssuesCount int             `json:"past_issues_count"`
}

// IssueResolvedPayload payload.
type IssueResolvedPayload struct {
	ProductID  string `json:"product_id"`
	Resolution string `json:"resolution"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}

// MessageAddedPayload payload.
type MessageAddedPayload struct {
	MessageID   int64         `json:"message_id"`
	Sender      domain.Sender `json:"sender"`
	BodyPreview string        `json:"body_preview"`
}

// CriticalDetectedPayload is emitted when a customer filing a new issue
// still has an unattended High severity issue.
type CriticalDetectedPayload struct {
	Severity domain.Severity `json:"severity"`
}
