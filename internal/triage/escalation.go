package triage

import (
	"context"
	"time"

	"github.com/spec-kit/support-copilot/internal/repository"
)

// UnattendedThreshold is how long a High severity issue may stay open before it
// counts as unattended.
const UnattendedThreshold = 24 * time.Hour

// HasUnattendedCritical reports whether the customer owns an open High severity
// issue created strictly before now minus UnattendedThreshold.
func HasUnattendedCritical(ctx context.Context, store repository.IssueStore, customerID string, now time.Time) (bool, error) {
	count, err := store.CountOpenHighSeverityOlderThan(ctx, customerID, now.Add(-UnattendedThreshold))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
