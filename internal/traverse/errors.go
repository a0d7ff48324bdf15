package traverse

import "errors"

// Sentinel errors for path traversal.
var (
	// ErrBudgetExhausted indicates the per-emission cap on visited path
	// nodes was hit; the assembly attempt is abandoned, not fatal
	ErrBudgetExhausted = errors.New("path traversal node budget exhausted")

	// ErrOverlap indicates two alive memoized entries for the same k-mer
	// overlap, which the memoizer must never allow
	ErrOverlap = errors.New("memoized entries overlap")
)
