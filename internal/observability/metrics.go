package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/support-copilot/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	severityCount   map[domain.Severity]int64
	escalations     int64
	budgetOverruns  int64
	requestDuration map[string]time.Duration
}

// Snapshot is a point-in-time copy of the counters. RequestDurations holds the
// total time spent per request key.
type Snapshot struct {
	Requests         map[string]int64          `json:"requests"`
	RequestDurations map[string]time.Duration  `json:"request_durations"`
	Errors           map[string]int64          `json:"errors"`
	Severities       map[domain.Severity]int64 `json:"severities"`
	Escalations      int64                     `json:"escalations"`
	BudgetOverruns   int64                     `json:"budget_overruns"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		errorCount:      make(map[string]int64),
		severityCount:   make(map[domain.Severity]int64),
		requestDuration: make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAnalysis counts a classified severity and whether escalation was flagged.
func (m *Metrics) RecordAnalysis(analysis domain.Analysis) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.severityCount[analysis.Severity]++
	if analysis.HasCriticalIssues {
		m.escalations++
	}
}

// RecordBudgetOverrun counts dispatch responses flagged for exceeding the response budget.
func (m *Metrics) RecordBudgetOverrun() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgetOverruns++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		Requests:         make(map[string]int64, len(m.requestCount)),
		RequestDurations: make(map[string]time.Duration, len(m.requestDuration)),
		Errors:           make(map[string]int64, len(m.errorCount)),
		Severities:       make(map[domain.Severity]int64, len(m.severityCount)),
		Escalations:      m.escalations,
		BudgetOverruns:   m.budgetOverruns,
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.requestDuration {
		snap.RequestDurations[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.severityCount {
		snap.Severities[k] = v
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
