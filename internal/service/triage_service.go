package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/observability"
	"github.com/spec-kit/support-copilot/internal/repository"
	"github.com/spec-kit/support-copilot/internal/triage"
)

// Clock returns the current time.
type Clock func() time.Time

// TriageService exposes the analysis, template and summary operations over one issue store.
type TriageService struct {
	store   repository.IssueStore
	logger  *zap.Logger
	metrics *observability.Metrics
	now     Clock
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Store   repository.IssueStore
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Clock   Clock
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TriageService{
		store:   deps.Store,
		logger:  logger,
		metrics: deps.Metrics,
		now:     clock,
	}
}

// AnalyzeIssue classifies the description and gathers the customer/product context.
func (s *TriageService) AnalyzeIssue(ctx context.Context, description, customerID, productID string) (domain.Analysis, error) {
	analysis, err := triage.Compose(ctx, s.store, description, customerID, productID, s.now())
	if err != nil {
		s.logger.Error("analyze issue failed",
			zap.String("customer_id", customerID),
			zap.String("product_id", productID),
			zap.Error(err))
		return domain.Analysis{}, err
	}
	s.metrics.RecordAnalysis(analysis)
	s.logger.Debug("issue analyzed",
		zap.String("customer_id", customerID),
		zap.String("product_id", productID),
		zap.String("severity", string(analysis.Severity)),
		zap.Int("past_issues", analysis.PastIssuesCount),
		zap.Int("similar_issues", len(analysis.SimilarIssues)),
		zap.Bool("critical", analysis.HasCriticalIssues))
	return analysis, nil
}

// GenerateTemplate drafts the reply for a description and its analysis.
func (s *TriageService) GenerateTemplate(description string, analysis domain.Analysis) string {
	return triage.RenderTemplate(description, analysis)
}

// Summarize renders the conversation digest of an issue.
func (s *TriageService) Summarize(ctx context.Context, issueID int64) (string, error) {
	summary, err := triage.Summarize(ctx, s.store, issueID)
	if err != nil {
		s.logger.Error("summarize failed", zap.Int64("issue_id", issueID), zap.Error(err))
		return "", err
	}
	return summary, nil
}
