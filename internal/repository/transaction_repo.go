package repository

import (
	"context"
	"errors"

	"vbank-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	// ExecuteTransfer applies the debit, the credit and the ledger append as
	// one atomic unit. When the order carries an idempotency key that was
	// already used, the previously recorded transaction is returned instead
	// of applying the transfer again.
	ExecuteTransfer(ctx context.Context, order *domain.TransferOrder) (*domain.Transaction, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)
	ListStatement(ctx context.Context, accountID string) ([]*domain.StatementEntry, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) ExecuteTransfer(ctx context.Context, order *domain.TransferOrder) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	defer tx.Rollback(ctx)

	// Both account rows are locked in ascending id order, independent of
	// payer/payee role, so two opposite transfers between the same pair can
	// never deadlock on each other.
	first, second := order.PayerAccountID, order.PayeeAccountID
	if second < first {
		first, second = second, first
	}

	balances := make(map[string]decimal.Decimal, 2)
	for _, id := range []string{first, second} {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound("bank account", id)
			}
			return nil, domain.ErrInternal(err)
		}
		balances[id] = balance
	}

	// Re-check under the lock; the pre-flight check in the orchestrator can
	// be stale by the time the lock is held.
	payerBalance := balances[order.PayerAccountID]
	if payerBalance.LessThan(order.Amount) {
		return nil, domain.ErrInsufficientBalance(payerBalance, order.Amount)
	}

	_, err = tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`,
		order.Amount, order.PayerAccountID)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	_, err = tx.Exec(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
		order.Amount, order.PayeeAccountID)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}

	txn := &domain.Transaction{
		ID:             ulid.Make().String(),
		PayerAccountID: order.PayerAccountID,
		PayeeAccountID: order.PayeeAccountID,
		Amount:         order.Amount,
		Type:           domain.TransactionPix,
		Status:         domain.TransactionCompleted,
		IdempotencyKey: order.IdempotencyKey,
		Description:    order.Description,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (id, payer_account_id, payee_account_id, amount, type, status, idempotency_key, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`, txn.ID, txn.PayerAccountID, txn.PayeeAccountID, txn.Amount, txn.Type, txn.Status,
		txn.IdempotencyKey, txn.Description).Scan(&txn.CreatedAt)
	if err != nil {
		// A concurrent submission with the same idempotency key won the
		// race; roll back this attempt and surface the original entry.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && order.IdempotencyKey != nil {
			_ = tx.Rollback(ctx)
			existing, findErr := r.FindByIdempotencyKey(ctx, *order.IdempotencyKey)
			if findErr != nil {
				return nil, findErr
			}
			// Only a genuine retry may replay: same payer, same amount.
			if existing.PayerAccountID != order.PayerAccountID || !existing.Amount.Equal(order.Amount) {
				return nil, domain.ErrDuplicate("idempotency key was already used by a different transfer")
			}
			return existing, nil
		}
		return nil, domain.ErrInternal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal(err)
	}
	return txn, nil
}

const transactionColumns = `id, payer_account_id, payee_account_id, amount, type, status, idempotency_key, description, created_at`

func (r *transactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE idempotency_key = $1`, key).Scan(
		&t.ID, &t.PayerAccountID, &t.PayeeAccountID, &t.Amount, &t.Type, &t.Status,
		&t.IdempotencyKey, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound("transaction", key)
		}
		return nil, domain.ErrInternal(err)
	}
	return &t, nil
}

func (r *transactionRepo) ListStatement(ctx context.Context, accountID string) ([]*domain.StatementEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.payer_account_id, t.payee_account_id, t.amount, t.type, t.status,
		       t.idempotency_key, t.description, t.created_at,
		       CASE WHEN t.payer_account_id = $1 THEN 'OUTBOUND' ELSE 'INBOUND' END AS direction,
		       u.full_name AS counterparty_name
		FROM transactions t
		JOIN accounts a ON a.id = CASE WHEN t.payer_account_id = $1 THEN t.payee_account_id ELSE t.payer_account_id END
		JOIN users u ON u.id = a.user_id
		WHERE t.payer_account_id = $1 OR t.payee_account_id = $1
		ORDER BY t.created_at DESC
	`, accountID)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	defer rows.Close()

	var entries []*domain.StatementEntry
	for rows.Next() {
		var e domain.StatementEntry
		if err := rows.Scan(
			&e.ID, &e.PayerAccountID, &e.PayeeAccountID, &e.Amount, &e.Type, &e.Status,
			&e.IdempotencyKey, &e.Description, &e.CreatedAt,
			&e.Direction, &e.CounterpartyName,
		); err != nil {
			return nil, domain.ErrInternal(err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
