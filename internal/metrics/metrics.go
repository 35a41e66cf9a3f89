package metrics

import (
	"sync"
	"time"
)

// Recorder defines minimal metric hooks for gateway instrumentation.
type Recorder interface {
	ObserveChat(provider string, status string, duration time.Duration)
	ObserveFailure(provider string, kind string)
}

// NoopRecorder is the default when metrics are disabled.
type NoopRecorder struct{}

func (NoopRecorder) ObserveChat(string, string, time.Duration) {}
func (NoopRecorder) ObserveFailure(string, string)             {}

// Snapshot is a point-in-time view of in-memory counters.
type Snapshot struct {
	TotalChats     int
	ErrorChats     int
	FailuresByKind map[string]int
}

// InMemoryRecorder keeps process-local counters, used for run summaries
// and tests.
type InMemoryRecorder struct {
	mu             sync.Mutex
	totalChats     int
	errorChats     int
	failuresByKind map[string]int
}

func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{failuresByKind: make(map[string]int)}
}

func (r *InMemoryRecorder) ObserveChat(_ string, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalChats++
	if status != "success" {
		r.errorChats++
	}
}

func (r *InMemoryRecorder) ObserveFailure(_ string, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failuresByKind[kind]++
}

func (r *InMemoryRecorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	byKind := make(map[string]int, len(r.failuresByKind))
	for k, v := range r.failuresByKind {
		byKind[k] = v
	}
	return Snapshot{TotalChats: r.totalChats, ErrorChats: r.errorChats, FailuresByKind: byKind}
}
