package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigexperiment/youtube-transcript-Api/internal/transcript"
)

var _ transcript.Observer = (*Registry)(nil)

func TestRegistryObserver(t *testing.T) {
	r := New()
	r.StrategySucceeded("direct")
	r.StrategySucceeded("direct")
	r.StrategySucceeded("list_first")
	r.OriginBlockedRetry()
	r.Exhausted()

	assert.EqualValues(t, 2, r.Get("transcript_success_direct"))
	assert.EqualValues(t, 1, r.Get("transcript_success_list_first"))
	assert.EqualValues(t, 0, r.Get("transcript_success_page_scrape"))
	assert.EqualValues(t, 1, r.Get(OriginBlockedRetries))
	assert.EqualValues(t, 1, r.Get(TranscriptExhausted))
}

func TestRegistryFormat(t *testing.T) {
	r := New()
	r.Incr(TranscriptRequests)

	out := r.Format()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4+len(transcript.Strategies()))
	assert.Contains(t, out, "transcript_requests 1\n")
	assert.Contains(t, out, "transcript_success_page_scrape 0\n")
	assert.True(t, strings.HasPrefix(out, "batch_requests 0\n"))
}

func TestRegistryConcurrentIncr(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Incr("custom")
			r.Incr(TranscriptRequests)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, r.Get("custom"))
	assert.EqualValues(t, 50, r.Get(TranscriptRequests))
}
