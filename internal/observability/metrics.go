package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory request and failure counters keyed by
// route, method and outcome.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for completed requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordFailure increments failure counters by taxonomy kind.
func (m *Metrics) RecordFailure(path, method, kind string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + kind
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// FailureCount returns the number of recorded failures for a route,
// method and kind.
func (m *Metrics) FailureCount(path, method, kind string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[path+"|"+method+"|"+kind]
}
