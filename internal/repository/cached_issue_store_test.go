package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-copilot/internal/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func newTestCachedStore(t *testing.T, base IssueStore) (*miniredis.Miniredis, *cachedIssueStore) {
	t.Helper()
	mr, client := setupTestRedis(t)
	store, ok := NewCachedIssueStore(base, client, time.Minute, zap.NewNop()).(*cachedIssueStore)
	require.True(t, ok)
	return mr, store
}

func currentResolvedKey(t *testing.T, store *cachedIssueStore, productID string) string {
	t.Helper()
	gen, err := store.generation(context.Background(), productID)
	require.NoError(t, err)
	return resolvedKey(productID, gen)
}

// interleavedStore runs a hook after the wrapped FindResolved has read its
// result but before that result is returned.
type interleavedStore struct {
	*MemoryIssueStore
	afterRead func()
}

func (s *interleavedStore) FindResolved(ctx context.Context, productID string) ([]domain.ResolvedIssue, error) {
	items, err := s.MemoryIssueStore.FindResolved(ctx, productID)
	if s.afterRead != nil {
		hook := s.afterRead
		s.afterRead = nil
		hook()
	}
	return items, err
}

func TestCachedIssueStore_FindResolvedPopulatesCache(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestCachedStore(t, NewMemoryIssueStore())

	res := "Restart the application"
	require.NoError(t, store.InsertIssue(ctx, &domain.Issue{ProductID: "PROD001", Description: "UI glitch", Status: domain.IssueStatusResolved, Resolution: &res}))
	key := currentResolvedKey(t, store, "PROD001")
	assert.False(t, mr.Exists(key))

	items, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, mr.Exists(key))

	cached, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, items, cached)
}

func TestCachedIssueStore_ResolveInvalidates(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestCachedStore(t, NewMemoryIssueStore())

	issue := &domain.Issue{ProductID: "PROD001", Description: "UI glitch", Status: domain.IssueStatusOpen}
	require.NoError(t, store.InsertIssue(ctx, issue))

	items, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Empty(t, items)
	before := currentResolvedKey(t, store, "PROD001")
	assert.True(t, mr.Exists(before))

	require.NoError(t, store.ResolveIssue(ctx, issue.ID, "Restart the application"))
	assert.NotEqual(t, before, currentResolvedKey(t, store, "PROD001"))

	items, err = store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "UI glitch", Resolution: "Restart the application"}}, items)
}

func TestCachedIssueStore_ConcurrentResolveNotMasked(t *testing.T) {
	ctx := context.Background()
	base := &interleavedStore{MemoryIssueStore: NewMemoryIssueStore()}
	_, store := newTestCachedStore(t, base)

	issue := &domain.Issue{ProductID: "PROD001", Description: "UI glitch", Status: domain.IssueStatusOpen}
	require.NoError(t, store.InsertIssue(ctx, issue))

	// the resolve commits and invalidates after the read hit the store but
	// before the stale list is written back to the cache
	base.afterRead = func() {
		require.NoError(t, store.ResolveIssue(ctx, issue.ID, "Restart the application"))
	}
	stale, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "UI glitch", Resolution: "Restart the application"}}, fresh)
}

func TestCachedIssueStore_InsertIssueWithMessage(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryIssueStore()
	_, store := newTestCachedStore(t, base)

	_, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	before := currentResolvedKey(t, store, "PROD001")

	res := "Refund"
	issue := &domain.Issue{CustomerID: "C1", ProductID: "PROD001", Description: "Payment issue", Status: domain.IssueStatusResolved, Resolution: &res}
	msg := &domain.ConversationMessage{Message: "Payment issue", Sender: domain.SenderCustomer}
	require.NoError(t, store.InsertIssueWithMessage(ctx, issue, msg))
	assert.Equal(t, issue.ID, msg.IssueID)
	assert.NotEqual(t, before, currentResolvedKey(t, store, "PROD001"))

	items, err := store.FindResolved(ctx, "PROD001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "Payment issue", Resolution: "Refund"}}, items)
}

func TestCachedIssueStore_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryIssueStore()
	mr, store := newTestCachedStore(t, base)

	res := "Refund"
	require.NoError(t, base.InsertIssue(ctx, &domain.Issue{ProductID: "PROD002", Description: "Payment issue", Status: domain.IssueStatusResolved, Resolution: &res}))
	mr.Close()

	items, err := store.FindResolved(ctx, "PROD002")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedIssue{{Description: "Payment issue", Resolution: "Refund"}}, items)
}

func TestNewCachedIssueStore_NilClient(t *testing.T) {
	base := NewMemoryIssueStore()
	assert.Same(t, base, NewCachedIssueStore(base, nil, time.Minute, nil))
}
