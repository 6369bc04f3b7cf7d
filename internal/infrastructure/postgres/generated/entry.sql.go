package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countEntriesByWallet = `-- name: CountEntriesByWallet :one
SELECT COUNT(*) FROM entries WHERE wallet_id = $1
`

func (q *Queries) CountEntriesByWallet(ctx context.Context, walletID string) (int64, error) {
	row := q.db.QueryRow(ctx, countEntriesByWallet, walletID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createEntry = `-- name: CreateEntry :one
INSERT INTO entries (id, wallet_id, amount, direction, status, idempotency_key, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, wallet_id, amount, direction, status, idempotency_key, note, created_at
`

type CreateEntryParams struct {
	ID             string             `json:"id"`
	WalletID       string             `json:"wallet_id"`
	Amount         pgtype.Numeric     `json:"amount"`
	Direction      string             `json:"direction"`
	Status         string             `json:"status"`
	IdempotencyKey pgtype.Text        `json:"idempotency_key"`
	Note           pgtype.Text        `json:"note"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	row := q.db.QueryRow(ctx, createEntry,
		arg.ID,
		arg.WalletID,
		arg.Amount,
		arg.Direction,
		arg.Status,
		arg.IdempotencyKey,
		arg.Note,
		arg.CreatedAt,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Amount,
		&i.Direction,
		&i.Status,
		&i.IdempotencyKey,
		&i.Note,
		&i.CreatedAt,
	)
	return i, err
}

const getEntriesByWallet = `-- name: GetEntriesByWallet :many
SELECT id, wallet_id, amount, direction, status, idempotency_key, note, created_at FROM entries
WHERE wallet_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type GetEntriesByWalletParams struct {
	WalletID string `json:"wallet_id"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}

func (q *Queries) GetEntriesByWallet(ctx context.Context, arg GetEntriesByWalletParams) ([]Entry, error) {
	rows, err := q.db.Query(ctx, getEntriesByWallet, arg.WalletID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Entry{}
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.Amount,
			&i.Direction,
			&i.Status,
			&i.IdempotencyKey,
			&i.Note,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEntryByKey = `-- name: GetEntryByKey :one
SELECT id, wallet_id, amount, direction, status, idempotency_key, note, created_at FROM entries
WHERE idempotency_key = $1 AND direction = $2 AND wallet_id = $3
ORDER BY created_at DESC, id DESC LIMIT 1
`

type GetEntryByKeyParams struct {
	IdempotencyKey pgtype.Text `json:"idempotency_key"`
	Direction      string      `json:"direction"`
	WalletID       string      `json:"wallet_id"`
}

func (q *Queries) GetEntryByKey(ctx context.Context, arg GetEntryByKeyParams) (Entry, error) {
	row := q.db.QueryRow(ctx, getEntryByKey, arg.IdempotencyKey, arg.Direction, arg.WalletID)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Amount,
		&i.Direction,
		&i.Status,
		&i.IdempotencyKey,
		&i.Note,
		&i.CreatedAt,
	)
	return i, err
}

const getLatestEntryByKey = `-- name: GetLatestEntryByKey :one
SELECT id, wallet_id, amount, direction, status, idempotency_key, note, created_at FROM entries
WHERE idempotency_key = $1 AND direction = $2
ORDER BY created_at DESC, id DESC LIMIT 1
`

type GetLatestEntryByKeyParams struct {
	IdempotencyKey pgtype.Text `json:"idempotency_key"`
	Direction      string      `json:"direction"`
}

func (q *Queries) GetLatestEntryByKey(ctx context.Context, arg GetLatestEntryByKeyParams) (Entry, error) {
	row := q.db.QueryRow(ctx, getLatestEntryByKey, arg.IdempotencyKey, arg.Direction)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Amount,
		&i.Direction,
		&i.Status,
		&i.IdempotencyKey,
		&i.Note,
		&i.CreatedAt,
	)
	return i, err
}
