package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/support-copilot/internal/domain"
)

// MemoryIssueStore keeps issues and messages in process memory.
// Used when no Postgres DSN is configured and in tests.
type MemoryIssueStore struct {
	mu       sync.RWMutex
	issues   []domain.Issue
	messages []domain.ConversationMessage
	nextID   int64
	nextMsg  int64
}

// NewMemoryIssueStore builds an empty store.
func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{}
}

func (s *MemoryIssueStore) CountIssues(_ context.Context, customerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, issue := range s.issues {
		if issue.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryIssueStore) FindResolved(_ context.Context, productID string) ([]domain.ResolvedIssue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.ResolvedIssue{}
	for _, issue := range s.issues {
		if issue.ProductID != productID || issue.Status != domain.IssueStatusResolved {
			continue
		}
		item := domain.ResolvedIssue{Description: issue.Description}
		if issue.Resolution != nil {
			item.Resolution = *issue.Resolution
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *MemoryIssueStore) CountOpenHighSeverityOlderThan(_ context.Context, customerID string, cutoff time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, issue := range s.issues {
		if issue.CustomerID == customerID &&
			issue.Severity == domain.SeverityHigh &&
			issue.Status == domain.IssueStatusOpen &&
			issue.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryIssueStore) ListMessages(_ context.Context, issueID int64) ([]domain.ConversationMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.ConversationMessage{}
	for _, msg := range s.messages {
		if msg.IssueID == issueID {
			result = append(result, msg)
		}
	}
	// messages are appended in insertion order, so a stable sort keeps ties in that order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

func (s *MemoryIssueStore) GetIssue(_ context.Context, issueID int64) (*domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.issues {
		if s.issues[i].ID == issueID {
			issue := cloneIssue(s.issues[i])
			return &issue, nil
		}
	}
	return nil, ErrIssueNotFound
}

func (s *MemoryIssueStore) InsertIssue(_ context.Context, issue *domain.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendIssue(issue)
	return nil
}

func (s *MemoryIssueStore) InsertIssueWithMessage(_ context.Context, issue *domain.Issue, msg *domain.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendIssue(issue)
	msg.IssueID = issue.ID
	s.appendMessage(msg)
	return nil
}

func (s *MemoryIssueStore) InsertMessage(_ context.Context, msg *domain.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendMessage(msg)
	return nil
}

func (s *MemoryIssueStore) ResolveIssue(_ context.Context, issueID int64, resolution string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == issueID {
			res := resolution
			s.issues[i].Status = domain.IssueStatusResolved
			s.issues[i].Resolution = &res
			return nil
		}
	}
	return ErrIssueNotFound
}

// appendIssue and appendMessage expect s.mu to be held for writing.
func (s *MemoryIssueStore) appendIssue(issue *domain.Issue) {
	s.nextID++
	issue.ID = s.nextID
	s.issues = append(s.issues, cloneIssue(*issue))
}

func (s *MemoryIssueStore) appendMessage(msg *domain.ConversationMessage) {
	s.nextMsg++
	msg.ID = s.nextMsg
	s.messages = append(s.messages, *msg)
}

// cloneIssue detaches the resolution pointer so stored issues never alias caller memory.
func cloneIssue(issue domain.Issue) domain.Issue {
	if issue.Resolution != nil {
		res := *issue.Resolution
		issue.Resolution = &res
	}
	return issue
}

func (s *MemoryIssueStore) Ping(context.Context) error {
	return nil
}
