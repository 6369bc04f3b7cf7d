package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether an entry increases or decreases a
// wallet balance.
type EntryDirection string

const (
	DirectionCredit EntryDirection = "credit"
	DirectionDebit  EntryDirection = "debit"
)

// EntryStatus is the lifecycle state of an entry. Entries that commit are
// always written as completed; pending and failed are reserved for
// operations that never reach the ledger.
type EntryStatus string

const (
	StatusPending   EntryStatus = "pending"
	StatusCompleted EntryStatus = "completed"
	StatusFailed    EntryStatus = "failed"
)

// Entry is an immutable ledger line recording one balance change against
// one wallet. Entries are append-only: never updated after creation.
type Entry struct {
	CreatedAt      time.Time
	ID             string
	WalletID       string
	Amount         decimal.Decimal
	Direction      EntryDirection
	Status         EntryStatus
	IdempotencyKey string
	Note           string
}
