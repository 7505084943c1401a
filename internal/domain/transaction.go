package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionPix        TransactionType = "PIX"
	TransactionTed        TransactionType = "TED"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

type TransactionDirection string

const (
	DirectionInbound  TransactionDirection = "INBOUND"
	DirectionOutbound TransactionDirection = "OUTBOUND"
)

// Transaction is an immutable ledger entry recording one completed transfer.
// Rows are append-only; they are never updated or deleted.
type Transaction struct {
	ID             string            `json:"id"`
	PayerAccountID string            `json:"payer_account_id"`
	PayeeAccountID string            `json:"payee_account_id"`
	Amount         decimal.Decimal   `json:"amount"`
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	IdempotencyKey *string           `json:"idempotency_key,omitempty"`
	Description    string            `json:"description"`
	CreatedAt      time.Time         `json:"created_at"`
}

// TransferOrder is the unit of work handed to the store once a transfer has
// passed validation and authorization. Debit, credit and the ledger append
// are applied as a single atomic unit.
type TransferOrder struct {
	PayerAccountID string
	PayeeAccountID string
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey *string
}

// StatementEntry is one transaction annotated from the point of view of a
// single account.
type StatementEntry struct {
	Transaction
	Direction        TransactionDirection `json:"direction"`
	CounterpartyName string               `json:"counterparty_name"`
}
