package domain

import "time"

// Sender labels who wrote a conversation message.
type Sender string

const (
	SenderCustomer Sender = "Customer"
	SenderAgent    Sender = "Agent"
)

// ConversationMessage is one entry in an issue's conversation thread.
type ConversationMessage struct {
	ID        int64
	IssueID   int64
	Message   string
	Sender    Sender
	Timestamp time.Time
}
