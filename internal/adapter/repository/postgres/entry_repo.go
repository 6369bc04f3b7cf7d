package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulcrumpay/walletd/internal/domain"
	"github.com/fulcrumpay/walletd/internal/infrastructure/postgres/generated"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a new entry within a transaction. Entries are write-once;
// no update path exists.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:             entry.ID,
		WalletID:       entry.WalletID,
		Amount:         decimalToNumeric(entry.Amount),
		Direction:      string(entry.Direction),
		Status:         string(entry.Status),
		IdempotencyKey: stringToPgText(entry.IdempotencyKey),
		Note:           stringToPgText(entry.Note),
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByWallet retrieves a wallet's entries, newest first.
func (r *EntryRepository) GetByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByWallet(ctx, generated.GetEntriesByWalletParams{
		WalletID: walletID,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// FindByKey returns the most recent entry matching key, direction and
// owning wallet.
func (r *EntryRepository) FindByKey(ctx context.Context, key string, direction domain.EntryDirection, walletID string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByKey(ctx, generated.GetEntryByKeyParams{
		IdempotencyKey: stringToPgText(key),
		Direction:      string(direction),
		WalletID:       walletID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// FindPairedByKey returns the most recent entry sharing the key with the
// given direction, regardless of wallet.
func (r *EntryRepository) FindPairedByKey(ctx context.Context, key string, direction domain.EntryDirection) (*domain.Entry, error) {
	row, err := r.queries.GetLatestEntryByKey(ctx, generated.GetLatestEntryByKeyParams{
		IdempotencyKey: stringToPgText(key),
		Direction:      string(direction),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:             row.ID,
		WalletID:       row.WalletID,
		Amount:         numericToDecimal(row.Amount),
		Direction:      domain.EntryDirection(row.Direction),
		Status:         domain.EntryStatus(row.Status),
		IdempotencyKey: row.IdempotencyKey.String,
		Note:           row.Note.String,
		CreatedAt:      row.CreatedAt.Time,
	}
}
