package triage

import (
	"strings"

	"github.com/spec-kit/support-copilot/internal/domain"
)

type severityRule struct {
	level    domain.Severity
	keywords []string
}

// severityRules is checked top to bottom; the first rule with a matching
// keyword wins, so a description mentioning both "crash" and "minor" is High.
var severityRules = []severityRule{
	{level: domain.SeverityHigh, keywords: []string{"failure", "crash", "urgent"}},
	{level: domain.SeverityNormal, keywords: []string{"issue", "problem"}},
	{level: domain.SeverityLow, keywords: []string{"glitch", "minor"}},
}

// Classify maps a free-text description to a severity level.
// Matching is case-insensitive substring search; Normal when nothing matches.
func Classify(description string) domain.Severity {
	lower := strings.ToLower(description)
	for _, rule := range severityRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.level
			}
		}
	}
	return domain.SeverityNormal
}
