package persistence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/repository"
)

func demoIssues() []domain.Issue {
	restart := "Restart the application"
	return []domain.Issue{
		{CustomerID: "CUST001", Description: "Login failure", CreatedAt: time.Date(2025, 7, 11, 10, 0, 0, 0, time.UTC), Severity: domain.SeverityHigh, Status: domain.IssueStatusOpen, ProductID: "PROD001"},
		{CustomerID: "CUST001", Description: "Payment issue", CreatedAt: time.Date(2025, 7, 12, 8, 0, 0, 0, time.UTC), Severity: domain.SeverityNormal, Status: domain.IssueStatusOpen, ProductID: "PROD002"},
		{CustomerID: "CUST002", Description: "UI glitch", CreatedAt: time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC), Severity: domain.SeverityLow, Status: domain.IssueStatusResolved, ProductID: "PROD001", Resolution: &restart},
	}
}

// SeedDemoData inserts the sample issues once. It is a no-op when the demo
// customers already have issues on file.
func SeedDemoData(ctx context.Context, store repository.IssueStore, logger *zap.Logger) error {
	existing, err := store.CountIssues(ctx, "CUST001")
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	if existing > 0 {
		logger.Info("demo data already present; skipping seed")
		return nil
	}

	issues := demoIssues()
	for i := range issues {
		if err := store.InsertIssue(ctx, &issues[i]); err != nil {
			return fmt.Errorf("seed demo issue %q: %w", issues[i].Description, err)
		}
	}
	logger.Info("demo data seeded", zap.Int("issues", len(issues)))
	return nil
}
