package testutil

import (
	"sync"
	"time"
)

// FixedStopwatch reports a predetermined elapsed duration for every
// measurement. This makes responseTime fields deterministic so report
// output can be compared against golden files.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedStopwatch struct {
	mu      sync.Mutex
	elapsed time.Duration
	starts  int
}

// NewFixedStopwatch creates a stopwatch that always reports elapsed.
func NewFixedStopwatch(elapsed time.Duration) *FixedStopwatch {
	return &FixedStopwatch{elapsed: elapsed}
}

// Start implements inspect.Stopwatch.
func (s *FixedStopwatch) Start() func() time.Duration {
	s.mu.Lock()
	s.starts++
	s.mu.Unlock()
	return func() time.Duration { return s.elapsed }
}

// Starts returns how many measurements were started.
func (s *FixedStopwatch) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

// FixedTokens returns predetermined run tokens in order, enabling golden
// report comparison.
//
// Panics when exhausted: a fail-fast guard against test misconfiguration.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
