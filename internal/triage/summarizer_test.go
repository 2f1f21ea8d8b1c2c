package triage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/repository"
)

func TestRenderSummary(t *testing.T) {
	t.Run("empty conversation yields header only", func(t *testing.T) {
		assert.Equal(t, "Conversation Summary:\n", RenderSummary(nil))
	})

	t.Run("short message still gets marker", func(t *testing.T) {
		msg := strings.Repeat("a", 30)
		out := RenderSummary([]domain.ConversationMessage{{Sender: domain.SenderCustomer, Message: msg}})
		assert.Equal(t, "Conversation Summary:\n- Customer: "+msg+"...\n", out)
	})

	t.Run("long message truncated to 50 characters", func(t *testing.T) {
		msg := strings.Repeat("0123456789", 100)
		out := RenderSummary([]domain.ConversationMessage{{Sender: domain.SenderAgent, Message: msg}})
		assert.Equal(t, "Conversation Summary:\n- Agent: "+msg[:50]+"...\n", out)
	})

	t.Run("truncation counts characters not bytes", func(t *testing.T) {
		msg := strings.Repeat("é", 60)
		out := RenderSummary([]domain.ConversationMessage{{Sender: domain.SenderAgent, Message: msg}})
		assert.Equal(t, "Conversation Summary:\n- Agent: "+strings.Repeat("é", 50)+"...\n", out)
	})
}

func TestSummarize_OrdersByTimestamp(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryIssueStore()
	base := time.Date(2025, 7, 12, 8, 0, 0, 0, time.UTC)

	issue := &domain.Issue{CustomerID: "CUST001", Description: "Login failure", Status: domain.IssueStatusOpen}
	require.NoError(t, store.InsertIssue(ctx, issue))

	msgs := []domain.ConversationMessage{
		{IssueID: issue.ID, Message: "third", Sender: domain.SenderAgent, Timestamp: base.Add(2 * time.Minute)},
		{IssueID: issue.ID, Message: "first", Sender: domain.SenderCustomer, Timestamp: base},
		{IssueID: issue.ID, Message: "second", Sender: domain.SenderAgent, Timestamp: base.Add(time.Minute)},
		{IssueID: issue.ID, Message: "second tie", Sender: domain.SenderCustomer, Timestamp: base.Add(time.Minute)},
		{IssueID: issue.ID + 1, Message: "other issue", Sender: domain.SenderAgent, Timestamp: base},
	}
	for i := range msgs {
		require.NoError(t, store.InsertMessage(ctx, &msgs[i]))
	}

	summary, err := Summarize(ctx, store, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Conversation Summary:\n"+
		"- Customer: first...\n"+
		"- Agent: second...\n"+
		"- Customer: second tie...\n"+
		"- Agent: third...\n", summary)
}

func TestSummarize_UnknownIssue(t *testing.T) {
	summary, err := Summarize(context.Background(), repository.NewMemoryIssueStore(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Conversation Summary:\n", summary)
}
