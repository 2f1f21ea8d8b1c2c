package triage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/repository"
)

// Compose builds the Analysis for a new issue. The store lookups are
// independent and run concurrently; the first store error is returned as is.
func Compose(ctx context.Context, store repository.IssueStore, description, customerID, productID string, now time.Time) (domain.Analysis, error) {
	var (
		pastIssues int
		similar    []domain.SimilarIssue
		critical   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := store.CountIssues(gctx, customerID)
		pastIssues = count
		return err
	})
	g.Go(func() error {
		items, err := FindSimilar(gctx, store, productID)
		similar = items
		return err
	})
	g.Go(func() error {
		flagged, err := HasUnattendedCritical(gctx, store, customerID, now)
		critical = flagged
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Analysis{}, err
	}

	return domain.Analysis{
		PastIssuesCount:   pastIssues,
		SimilarIssues:     similar,
		Severity:          Classify(description),
		HasCriticalIssues: critical,
	}, nil
}
