package triage

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-copilot/internal/domain"
)

const (
	// FallbackRecommendation is offered when no similar issue has been resolved.
	FallbackRecommendation = "Please provide more details."
	// CriticalNotice is rendered only for customers with unattended critical issues.
	CriticalNotice = "Note: Critical issues detected that need urgent attention."
)

// RenderTemplate drafts the customer-facing reply for an issue.
func RenderTemplate(description string, analysis domain.Analysis) string {
	var b strings.Builder
	b.WriteString(salutation(description))
	b.WriteString("\n\nBased on our analysis:\n")
	b.WriteString(severityLine(analysis.Severity))
	b.WriteString("\n")
	b.WriteString(pastIssuesLine(analysis.PastIssuesCount))
	b.WriteString("\n")
	if line := criticalLine(analysis.HasCriticalIssues); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nRecommended Steps:\n1. ")
	b.WriteString(RecommendedStep(analysis.SimilarIssues))
	b.WriteString("\n\n")
	b.WriteString(signOff())
	return b.String()
}

func salutation(description string) string {
	return fmt.Sprintf("Dear Customer,\n\nThank you for reaching out regarding: \"%s\".", description)
}

func severityLine(severity domain.Severity) string {
	return fmt.Sprintf("- Issue Severity: %s", severity)
}

func pastIssuesLine(count int) string {
	return fmt.Sprintf("- Past Issues: %d previous issues", count)
}

func criticalLine(hasCritical bool) string {
	if !hasCritical {
		return ""
	}
	return "- " + CriticalNotice
}

// RecommendedStep picks the resolution of the first similar issue.
func RecommendedStep(similar []domain.SimilarIssue) string {
	if len(similar) == 0 {
		return FallbackRecommendation
	}
	return similar[0].Resolution
}

func signOff() string {
	return "Best regards,\nSupport Team\n"
}
