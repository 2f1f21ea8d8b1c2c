package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-copilot/internal/domain"
)

func TestMemoryIssueStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIssueStore()

	first := &domain.Issue{CustomerID: "CUST001", Description: "Login failure", Status: domain.IssueStatusOpen}
	second := &domain.Issue{CustomerID: "CUST001", Description: "Payment issue", Status: domain.IssueStatusOpen}
	require.NoError(t, store.InsertIssue(ctx, first))
	require.NoError(t, store.InsertIssue(ctx, second))
	assert.Less(t, first.ID, second.ID)

	found, err := store.GetIssue(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Payment issue", found.Description)

	_, err = store.GetIssue(ctx, 999)
	assert.ErrorIs(t, err, ErrIssueNotFound)

	count, err := store.CountIssues(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountIssues(ctx, "NOBODY")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryIssueStore_ResolveIssue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIssueStore()

	issue := &domain.Issue{ProductID: "PROD001", Description: "UI glitch", Status: domain.IssueStatusOpen}
	require.NoError(t, store.InsertIssue(ctx, issue))

	resolved, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Empty(t, resolved)

	require.NoError(t, store.ResolveIssue(ctx, issue.ID, "Restart the application"))

	resolved, err = store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "UI glitch", Resolution: "Restart the application"}}, resolved)

	assert.ErrorIs(t, store.ResolveIssue(ctx, 999, "x"), ErrIssueNotFound)
}

func TestMemoryIssueStore_CountOpenHighSeverityOlderThan(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIssueStore()
	cutoff := time.Date(2025, 7, 12, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertIssue(ctx, &domain.Issue{CustomerID: "C", Severity: domain.SeverityHigh, Status: domain.IssueStatusOpen, CreatedAt: cutoff}))
	require.NoError(t, store.InsertIssue(ctx, &domain.Issue{CustomerID: "C", Severity: domain.SeverityHigh, Status: domain.IssueStatusOpen, CreatedAt: cutoff.Add(-time.Nanosecond)}))

	count, err := store.CountOpenHighSeverityOlderThan(ctx, "C", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryIssueStore_InsertIssueWithMessage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIssueStore()
	now := time.Date(2025, 7, 13, 12, 0, 0, 0, time.UTC)

	issue := &domain.Issue{CustomerID: "CUST001", Description: "Login failure", Status: domain.IssueStatusOpen, CreatedAt: now}
	msg := &domain.ConversationMessage{Message: "Login failure", Sender: domain.SenderCustomer, Timestamp: now}
	require.NoError(t, store.InsertIssueWithMessage(ctx, issue, msg))
	assert.NotZero(t, issue.ID)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, issue.ID, msg.IssueID)

	msgs, err := store.ListMessages(ctx, issue.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Login failure", msgs[0].Message)
}

func TestMemoryIssueStore_ResolutionNotAliased(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIssueStore()

	res := "Restart the application"
	issue := &domain.Issue{ProductID: "PROD001", Description: "UI glitch", Status: domain.IssueStatusResolved, Resolution: &res}
	require.NoError(t, store.InsertIssue(ctx, issue))

	res = "changed by caller"
	found, err := store.GetIssue(ctx, issue.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Resolution)
	assert.Equal(t, "Restart the application", *found.Resolution)

	*found.Resolution = "changed through lookup"
	again, err := store.GetIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Restart the application", *again.Resolution)

	resolved, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "UI glitch", Resolution: "Restart the application"}}, resolved)
}
