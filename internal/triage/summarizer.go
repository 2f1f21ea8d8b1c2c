package triage

import (
	"context"
	"strings"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/repository"
)

const (
	summaryHeader     = "Conversation Summary:"
	summaryPreviewLen = 50
)

// Summarize renders a digest of the conversation of an issue.
func Summarize(ctx context.Context, store repository.IssueStore, issueID int64) (string, error) {
	messages, err := store.ListMessages(ctx, issueID)
	if err != nil {
		return "", err
	}
	return RenderSummary(messages), nil
}

// RenderSummary writes one line per message in the given order. The "..."
// marker is appended to every line, truncated or not.
func RenderSummary(messages []domain.ConversationMessage) string {
	var b strings.Builder
	b.WriteString(summaryHeader)
	b.WriteString("\n")
	for _, msg := range messages {
		b.WriteString("- ")
		b.WriteString(string(msg.Sender))
		b.WriteString(": ")
		b.WriteString(preview(msg.Message, summaryPreviewLen))
		b.WriteString("...\n")
	}
	return b.String()
}

func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
