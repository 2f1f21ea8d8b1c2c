package domain

import "time"

// Severity is the triage priority of an issue.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityNormal Severity = "Normal"
	SeverityLow    Severity = "Low"
)

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "Open"
	IssueStatusResolved IssueStatus = "Resolved"
)

// Issue is a single customer-reported problem.
type Issue struct {
	ID          int64
	CustomerID  string
	Description string
	CreatedAt   time.Time
	Severity    Severity
	Status      IssueStatus
	ProductID   string
	Resolution  *string
}

// ResolvedIssue is the description/resolution pair of a closed issue.
// Resolution is empty when the operator closed the issue without one.
type ResolvedIssue struct {
	Description string
	Resolution  string
}
