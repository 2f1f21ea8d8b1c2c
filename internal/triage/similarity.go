package triage

import (
	"context"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/repository"
)

// NoResolutionPlaceholder stands in for resolved issues closed without a resolution text.
const NoResolutionPlaceholder = "No resolution provided"

// FindSimilar returns the resolved issues of a product in store order.
func FindSimilar(ctx context.Context, store repository.IssueStore, productID string) ([]domain.SimilarIssue, error) {
	resolved, err := store.FindResolved(ctx, productID)
	if err != nil {
		return nil, err
	}
	similar := make([]domain.SimilarIssue, 0, len(resolved))
	for _, item := range resolved {
		resolution := item.Resolution
		if resolution == "" {
			resolution = NoResolutionPlaceholder
		}
		similar = append(similar, domain.SimilarIssue{
			Description: item.Description,
			Resolution:  resolution,
		})
	}
	return similar, nil
}
