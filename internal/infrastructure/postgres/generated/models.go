package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Wallet struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	OwnerName pgtype.Text        `json:"owner_name"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Entry struct {
	ID             string             `json:"id"`
	WalletID       string             `json:"wallet_id"`
	Amount         pgtype.Numeric     `json:"amount"`
	Direction      string             `json:"direction"`
	Status         string             `json:"status"`
	IdempotencyKey pgtype.Text        `json:"idempotency_key"`
	Note           pgtype.Text        `json:"note"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}
