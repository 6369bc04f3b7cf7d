package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds every mutating unit of work. A
	// lock-wait that exceeds it aborts the transaction and releases all
	// locks held so far.
	DefaultTransactionTimeout = 30 * time.Second
)
