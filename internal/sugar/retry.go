package sugar

import "regexp"

// reOutOfMemory classifies stderr output that indicates GPU memory
// exhaustion, the one failure mode worth retrying at a lower budget.
var reOutOfMemory = regexp.MustCompile(
	`(?i)CUDA out of memory|CUDA error: out of memory|torch\.OutOfMemoryError|` +
		`RuntimeError: CUDA error.*out of memory`)

// MatchOutOfMemory reports whether stderr contains a GPU OOM failure.
func MatchOutOfMemory(stderr string) bool {
	return reOutOfMemory.MatchString(stderr)
}

const maxAttempts = 2

// RetryState tracks the fallback applied across extraction attempts for a
// single model. There is one fix: when the run dies of GPU memory
// exhaustion, retry once at the low-poly vertex budget.
type RetryState struct {
	Attempt       int
	MaxAttempts   int
	ForcedLowPoly bool
}

// NewRetryState returns a fresh RetryState.
func NewRetryState() *RetryState {
	return &RetryState{MaxAttempts: maxAttempts}
}

// Advance inspects stderr from a failed run and applies the OOM fallback if
// it matches and has not been applied yet. Returns true when a retry is
// warranted.
func (s *RetryState) Advance(stderr string) bool {
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return false
	}
	if !s.ForcedLowPoly && MatchOutOfMemory(stderr) {
		s.ForcedLowPoly = true
		return true
	}
	return false
}
