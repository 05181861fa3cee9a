package sequence

import "context"

// CounterRepository defines the interface for sequence counter persistence.
//
// IncrementAndGet is the single atomic read-increment-write operation of the
// engine. Implementations must serialize concurrent callers per
// (document type, scope) — via a row-level lock, a unique-constraint-and-retry
// loop, or an atomic increment primitive — so that no two callers can ever
// commit the same value for the same scope. When invoked inside an enclosing
// store transaction the increment must participate in it, so that a rolled
// back transaction also reverts the consumed value.
type CounterRepository interface {
	// Peek returns the current counter value without mutating it.
	// Returns 0 when no counter row exists yet; creates no row.
	Peek(ctx context.Context, documentType DocumentType, scope string) (int64, error)

	// IncrementAndGet atomically increments the counter for (documentType, scope),
	// creating the row with initial value 0 if absent, and returns the new value.
	// Fails with shared.ErrConcurrencyConflict when the atomic step cannot
	// complete after a bounded number of retries.
	IncrementAndGet(ctx context.Context, documentType DocumentType, scope string) (int64, error)

	// Reset sets the counter to an explicit value, creating the row if absent.
	// Administrative only; callers enforce the privilege tier.
	Reset(ctx context.Context, documentType DocumentType, scope string, value int64) error
}
