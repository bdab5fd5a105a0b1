// Package metrics keeps process counters for transcript requests.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

const (
	TranscriptRequests   = "transcript_requests"
	TranscriptExhausted  = "transcript_exhausted"
	OriginBlockedRetries = "origin_blocked_retries"
	BatchRequests        = "batch_requests"

	successPrefix = "transcript_success_"
)

// Registry is a set of named monotonic counters. It implements
// transcript.Observer.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
}

// New returns a Registry with every known counter registered at zero.
func New() *Registry {
	r := &Registry{counters: make(map[string]*atomic.Int64)}
	for _, name := range []string{TranscriptRequests, TranscriptExhausted, OriginBlockedRetries, BatchRequests} {
		r.counters[name] = new(atomic.Int64)
	}
	for _, s := range transcript.Strategies() {
		r.counters[successPrefix+string(s)] = new(atomic.Int64)
	}
	return r
}

func (r *Registry) counter(name string) *atomic.Int64 {
	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; !ok {
		c = new(atomic.Int64)
		r.counters[name] = c
	}
	return c
}

// Incr adds one to the named counter.
func (r *Registry) Incr(name string) {
	r.counter(name).Add(1)
}

// Get returns the current value of the named counter.
func (r *Registry) Get(name string) int64 {
	return r.counter(name).Load()
}

// Snapshot returns all counters.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}

// Format renders the counters as "name value" lines sorted by name.
func (r *Registry) Format() string {
	snap := r.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s %d\n", name, snap[name])
	}
	return sb.String()
}

func (r *Registry) StrategySucceeded(strategy string) { r.Incr(successPrefix + strategy) }

func (r *Registry) OriginBlockedRetry() { r.Incr(OriginBlockedRetries) }

func (r *Registry) Exhausted() { r.Incr(TranscriptExhausted) }
