package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countWallets = `-- name: CountWallets :one
SELECT COUNT(*) FROM wallets
`

func (q *Queries) CountWallets(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countWallets)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createWallet = `-- name: CreateWallet :one
INSERT INTO wallets (id, balance, owner_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, balance, owner_name, created_at, updated_at
`

type CreateWalletParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	OwnerName pgtype.Text        `json:"owner_name"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRow(ctx, createWallet,
		arg.ID,
		arg.Balance,
		arg.OwnerName,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.Balance,
		&i.OwnerName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByID = `-- name: GetWalletByID :one
SELECT id, balance, owner_name, created_at, updated_at FROM wallets WHERE id = $1
`

func (q *Queries) GetWalletByID(ctx context.Context, id string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByID, id)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.Balance,
		&i.OwnerName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByIDForUpdate = `-- name: GetWalletByIDForUpdate :one
SELECT id, balance, owner_name, created_at, updated_at FROM wallets WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetWalletByIDForUpdate(ctx context.Context, id string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByIDForUpdate, id)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.Balance,
		&i.OwnerName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletsByIDsForUpdate = `-- name: GetWalletsByIDsForUpdate :many
SELECT id, balance, owner_name, created_at, updated_at FROM wallets WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE
`

func (q *Queries) GetWalletsByIDsForUpdate(ctx context.Context, dollar_1 []string) ([]Wallet, error) {
	rows, err := q.db.Query(ctx, getWalletsByIDsForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Wallet{}
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.Balance,
			&i.OwnerName,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listWallets = `-- name: ListWallets :many
SELECT id, balance, owner_name, created_at, updated_at FROM wallets ORDER BY created_at DESC LIMIT $1 OFFSET $2
`

type ListWalletsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListWallets(ctx context.Context, arg ListWalletsParams) ([]Wallet, error) {
	rows, err := q.db.Query(ctx, listWallets, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Wallet{}
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.Balance,
			&i.OwnerName,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateWalletBalance = `-- name: UpdateWalletBalance :exec
UPDATE wallets SET balance = $2, updated_at = $3 WHERE id = $1
`

type UpdateWalletBalanceParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateWalletBalance(ctx context.Context, arg UpdateWalletBalanceParams) error {
	_, err := q.db.Exec(ctx, updateWalletBalance, arg.ID, arg.Balance, arg.UpdatedAt)
	return err
}
