package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/support-copilot/internal/domain"
)

var (
	// ErrStoreUnavailable marks failures of the backing store itself
	// (unreachable database, malformed schema). Callers match it with errors.Is.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrIssueNotFound is returned for lookups of unknown issue ids.
	ErrIssueNotFound = errors.New("issue not found")
)

// IssueStore persists issues and their conversation messages.
type IssueStore interface {
	CountIssues(ctx context.Context, customerID string) (int, error)
	FindResolved(ctx context.Context, productID string) ([]domain.ResolvedIssue, error)
	CountOpenHighSeverityOlderThan(ctx context.Context, customerID string, cutoff time.Time) (int, error)
	ListMessages(ctx context.Context, issueID int64) ([]domain.ConversationMessage, error)
	GetIssue(ctx context.Context, issueID int64) (*domain.Issue, error)
	InsertIssue(ctx context.Context, issue *domain.Issue) error
	// InsertIssueWithMessage stores an issue and its opening message as one unit:
	// either both are written or neither is. msg.IssueID is set to the new issue id.
	InsertIssueWithMessage(ctx context.Context, issue *domain.Issue, msg *domain.ConversationMessage) error
	InsertMessage(ctx context.Context, msg *domain.ConversationMessage) error
	ResolveIssue(ctx context.Context, issueID int64, resolution string) error
	Ping(ctx context.Context) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
