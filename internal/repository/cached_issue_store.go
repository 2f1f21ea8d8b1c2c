package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/domain"
)

const (
	resolvedKeyPrefix   = "copilot:resolved:"
	generationKeyPrefix = "copilot:resolved-gen:"
)

// cachedIssueStore serves FindResolved from Redis and delegates everything else.
//
// Cached lists are keyed by a per-product generation that is read before the
// store is queried. Writes that can change a product's resolved set bump the
// generation before returning, so a following read always misses the old entry,
// and a list read concurrently with the write can only land under the retired key.
type cachedIssueStore struct {
	IssueStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedIssueStore wraps store with a Redis cache for resolved issues.
// A nil client returns store unchanged.
func NewCachedIssueStore(store IssueStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) IssueStore {
	if client == nil {
		return store
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedIssueStore{IssueStore: store, client: client, ttl: ttl, logger: logger}
}

func resolvedKey(productID string, generation int64) string {
	return resolvedKeyPrefix + productID + ":" + strconv.FormatInt(generation, 10)
}

func generationKey(productID string) string {
	return generationKeyPrefix + productID
}

func (s *cachedIssueStore) generation(ctx context.Context, productID string) (int64, error) {
	gen, err := s.client.Get(ctx, generationKey(productID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *cachedIssueStore) FindResolved(ctx context.Context, productID string) ([]domain.ResolvedIssue, error) {
	gen, err := s.generation(ctx, productID)
	if err != nil {
		s.logger.Warn("resolved cache generation read failed", zap.String("product_id", productID), zap.Error(err))
		return s.IssueStore.FindResolved(ctx, productID)
	}

	key := resolvedKey(productID, gen)
	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []domain.ResolvedIssue
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		s.logger.Warn("discarding malformed resolved cache entry", zap.String("product_id", productID))
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("resolved cache read failed", zap.String("product_id", productID), zap.Error(err))
	}

	items, err := s.IssueStore.FindResolved(ctx, productID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(items)
	if err == nil {
		if setErr := s.client.Set(ctx, key, payload, s.ttl).Err(); setErr != nil {
			s.logger.Warn("resolved cache write failed", zap.String("product_id", productID), zap.Error(setErr))
		}
	}
	return items, nil
}

func (s *cachedIssueStore) InsertIssue(ctx context.Context, issue *domain.Issue) error {
	if err := s.IssueStore.InsertIssue(ctx, issue); err != nil {
		return err
	}
	if issue.Status == domain.IssueStatusResolved {
		s.invalidate(ctx, issue.ProductID)
	}
	return nil
}

func (s *cachedIssueStore) InsertIssueWithMessage(ctx context.Context, issue *domain.Issue, msg *domain.ConversationMessage) error {
	if err := s.IssueStore.InsertIssueWithMessage(ctx, issue, msg); err != nil {
		return err
	}
	if issue.Status == domain.IssueStatusResolved {
		s.invalidate(ctx, issue.ProductID)
	}
	return nil
}

func (s *cachedIssueStore) ResolveIssue(ctx context.Context, issueID int64, resolution string) error {
	issue, err := s.IssueStore.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}
	if err := s.IssueStore.ResolveIssue(ctx, issueID, resolution); err != nil {
		return err
	}
	s.invalidate(ctx, issue.ProductID)
	return nil
}

// invalidate retires the product's cached list. Entries under older
// generations are left to expire with the TTL.
func (s *cachedIssueStore) invalidate(ctx context.Context, productID string) {
	if err := s.client.Incr(ctx, generationKey(productID)).Err(); err != nil {
		s.logger.Error("resolved cache invalidation failed", zap.String("product_id", productID), zap.Error(err))
	}
}
