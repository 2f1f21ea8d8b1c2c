package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-copilot/internal/api/dto"
	"github.com/spec-kit/support-copilot/internal/domain"
	"github.com/spec-kit/support-copilot/internal/observability"
	"github.com/spec-kit/support-copilot/internal/repository"
	"github.com/spec-kit/support-copilot/internal/service"
	"github.com/spec-kit/support-copilot/pkg/util/errorutil"
)

type downStore struct {
	*repository.MemoryIssueStore
}

func (downStore) ListMessages(context.Context, int64) ([]domain.ConversationMessage, error) {
	return nil, fmt.Errorf("list messages: %w", repository.ErrStoreUnavailable)
}

func newDispatchApp(h *DispatchHandler) *fiber.App {
	app := fiber.New()
	app.Post("/api/analyze_issue", h.AnalyzeIssue)
	app.Post("/api/summarize", h.Summarize)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, dto.Envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestDispatchHandler_BudgetExceeded(t *testing.T) {
	metrics := observability.NewMetrics()
	triage := service.NewTriageService(service.TriageDependencies{Store: repository.NewMemoryIssueStore()})
	h := NewDispatchHandler(triage, 15*time.Second, metrics, nil)

	current := time.Date(2025, 7, 13, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time {
		tick := current
		current = current.Add(16 * time.Second)
		return tick
	}

	status, env := postJSON(t, newDispatchApp(h), "/api/analyze_issue", map[string]string{"customer_id": "C1", "issue_description": "crash"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Equal(t, "Response time exceeded 15 seconds", env.Error)
	assert.NotNil(t, env.Data)
	assert.Equal(t, int64(1), metrics.Snapshot().BudgetOverruns)
}

func TestDispatchHandler_WithinBudget(t *testing.T) {
	triage := service.NewTriageService(service.TriageDependencies{Store: repository.NewMemoryIssueStore()})
	h := NewDispatchHandler(triage, 15*time.Second, nil, nil)
	fixed := time.Date(2025, 7, 13, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	status, env := postJSON(t, newDispatchApp(h), "/api/analyze_issue", map[string]string{"customer_id": "C1"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, dto.StatusSuccess, env.Status)
	assert.Empty(t, env.Error)
}

func TestDispatchHandler_StoreUnavailable(t *testing.T) {
	triage := service.NewTriageService(service.TriageDependencies{Store: downStore{repository.NewMemoryIssueStore()}})
	h := NewDispatchHandler(triage, 15*time.Second, nil, nil)

	status, env := postJSON(t, newDispatchApp(h), "/api/summarize", map[string]any{"issue_id": 1})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Equal(t, "STORE_UNAVAILABLE", env.Code)
}

func TestBudgetExceededMessage(t *testing.T) {
	assert.Equal(t, "Response time exceeded 15 seconds", budgetExceededMessage(15*time.Second))
}

func TestDispatchHandler_GuardWrapsMiddlewareErrors(t *testing.T) {
	triage := service.NewTriageService(service.TriageDependencies{Store: repository.NewMemoryIssueStore()})
	h := NewDispatchHandler(triage, 15*time.Second, nil, nil)

	app := fiber.New()
	deny := func(c *fiber.Ctx) error { return errorutil.NewUnauthorized("invalid token") }
	app.Post("/api/summarize", h.Guard(deny), h.Summarize)

	status, env := postJSON(t, app, "/api/summarize", map[string]any{"issue_id": 1})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
	assert.Equal(t, "invalid token", env.Error)
}
