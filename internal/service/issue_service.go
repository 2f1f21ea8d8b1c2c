package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/events"
	"github.com/spec-kit/support-copilot/internal/repository"
)

// IssueService runs the intake and operator workflows around the triage core.
type IssueService struct {
	store      repository.IssueStore
	triage     *TriageService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        Clock
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	Store      repository.IssueStore
	Triage     *TriageService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      Clock
}

// FileIssueInput describes a newly reported issue.
type FileIssueInput struct {
	CustomerID  string
	ProductID   string
	Description string
}

// FileIssueResult is everything the intake flow produces for a new issue.
type FileIssueResult struct {
	Issue    *domain.Issue
	Analysis domain.Analysis
	Template string
	Summary  string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &IssueService{
		store:      deps.Store,
		triage:     deps.Triage,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// FileIssue analyzes a new issue, drafts the reply, then records the issue and
// the customer's opening message. The analysis runs before the write, so the
// past issue count does not include the issue being filed.
func (s *IssueService) FileIssue(ctx context.Context, input FileIssueInput) (*FileIssueResult, error) {
	analysis, err := s.triage.AnalyzeIssue(ctx, input.Description, input.CustomerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	template := s.triage.GenerateTemplate(input.Description, analysis)

	now := s.now()
	issue := &domain.Issue{
		CustomerID:  input.CustomerID,
		Description: input.Description,
		CreatedAt:   now,
		Severity:    analysis.Severity,
		Status:      domain.IssueStatusOpen,
		ProductID:   input.ProductID,
	}
	opening := &domain.ConversationMessage{
		Message:   input.Description,
		Sender:    domain.SenderCustomer,
		Timestamp: now,
	}
	if err := s.store.InsertIssueWithMessage(ctx, issue, opening); err != nil {
		return nil, err
	}

	summary, err := s.triage.Summarize(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue filed",
		zap.Int64("issue_id", issue.ID),
		zap.String("customer_id", issue.CustomerID),
		zap.String("severity", string(issue.Severity)))

	s.publishEvent(ctx, events.Event{
		Type:       events.EventIssueFiled,
		IssueID:    issue.ID,
		CustomerID: issue.CustomerID,
		Payload: events.IssueFiledPayload{
			ProductID:       issue.ProductID,
			Severity:        issue.Severity,
			PastIssuesCount: analysis.PastIssuesCount,
		},
	})
	if analysis.HasCriticalIssues {
		s.publishEvent(ctx, events.Event{
			Type:       events.EventCriticalDetected,
			IssueID:    issue.ID,
			CustomerID: issue.CustomerID,
			Payload:    events.CriticalDetectedPayload{Severity: issue.Severity},
		})
	}

	return &FileIssueResult{
		Issue:    issue,
		Analysis: analysis,
		Template: template,
		Summary:  summary,
	}, nil
}

// GetIssue fetches an issue by id.
func (s *IssueService) GetIssue(ctx context.Context, issueID int64) (*domain.Issue, error) {
	return s.store.GetIssue(ctx, issueID)
}

// AddMessage appends a message to an issue's conversation. Sender defaults to Agent.
func (s *IssueService) AddMessage(ctx context.Context, issueID int64, sender domain.Sender, body string) (*domain.ConversationMessage, error) {
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(sender)) == "" {
		sender = domain.SenderAgent
	}
	msg := &domain.ConversationMessage{
		IssueID:   issue.ID,
		Message:   body,
		Sender:    sender,
		Timestamp: s.now(),
	}
	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventMessageAdded,
		IssueID:    issue.ID,
		CustomerID: issue.CustomerID,
		Payload: events.MessageAddedPayload{
			MessageID:   msg.ID,
			Sender:      msg.Sender,
			BodyPreview: stringPreview(msg.Message, 120),
		},
	})
	return msg, nil
}

// ResolveIssue closes an issue with the operator's resolution text. resolvedBy
// names the authenticated client and is empty when auth is off.
func (s *IssueService) ResolveIssue(ctx context.Context, issueID int64, resolution, resolvedBy string) (*domain.Issue, error) {
	resolution = strings.TrimSpace(resolution)
	if err := s.store.ResolveIssue(ctx, issueID, resolution); err != nil {
		return nil, err
	}
	issue, err := s.store.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("issue resolved",
		zap.Int64("issue_id", issue.ID),
		zap.String("product_id", issue.ProductID),
		zap.String("resolved_by", resolvedBy))
	s.publishEvent(ctx, events.Event{
		Type:       events.EventIssueResolved,
		IssueID:    issue.ID,
		CustomerID: issue.CustomerID,
		Payload: events.IssueResolvedPayload{
			ProductID:  issue.ProductID,
			Resolution: resolution,
			ResolvedBy: resolvedBy,
		},
	})
	return issue, nil
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
