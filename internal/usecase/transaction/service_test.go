package transaction

import (
	"context"
	"testing"
	"time"

	"vbank-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	byUserID map[string]*domain.Account
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	for _, a := range f.byUserID {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound("bank account", id)
}

func (f *fakeAccounts) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	a, ok := f.byUserID[userID]
	if !ok {
		return nil, domain.ErrNotFound("bank account", userID)
	}
	return a, nil
}

type fakeTxns struct {
	txns  []*domain.Transaction
	names map[string]string // account id -> holder name
}

func (f *fakeTxns) ExecuteTransfer(ctx context.Context, order *domain.TransferOrder) (*domain.Transaction, error) {
	panic("not used")
}

func (f *fakeTxns) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	return nil, domain.ErrNotFound("transaction", key)
}

func (f *fakeTxns) ListStatement(ctx context.Context, accountID string) ([]*domain.StatementEntry, error) {
	var out []*domain.StatementEntry
	for i := len(f.txns) - 1; i >= 0; i-- {
		t := f.txns[i]
		if t.PayerAccountID != accountID && t.PayeeAccountID != accountID {
			continue
		}
		direction := domain.DirectionInbound
		counterparty := t.PayerAccountID
		if t.PayerAccountID == accountID {
			direction = domain.DirectionOutbound
			counterparty = t.PayeeAccountID
		}
		out = append(out, &domain.StatementEntry{
			Transaction:      *t,
			Direction:        direction,
			CounterpartyName: f.names[counterparty],
		})
	}
	return out, nil
}

func TestGetStatement(t *testing.T) {
	accounts := &fakeAccounts{byUserID: map[string]*domain.Account{
		"user-alice": {ID: "acc-alice", UserID: "user-alice"},
	}}
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	txns := &fakeTxns{
		names: map[string]string{"acc-bob": "Bob Lima", "acc-carol": "Carol Dias"},
		txns: []*domain.Transaction{
			{ID: "txn-1", PayerAccountID: "acc-alice", PayeeAccountID: "acc-bob", Amount: decimal.RequireFromString("10.00"), CreatedAt: base},
			{ID: "txn-2", PayerAccountID: "acc-carol", PayeeAccountID: "acc-alice", Amount: decimal.RequireFromString("25.00"), CreatedAt: base.Add(time.Hour)},
			{ID: "txn-3", PayerAccountID: "acc-carol", PayeeAccountID: "acc-bob", Amount: decimal.RequireFromString("99.00"), CreatedAt: base.Add(2 * time.Hour)},
		},
	}

	svc := New(txns, accounts)
	entries, err := svc.GetStatement(context.Background(), "user-alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first; the carol→bob transfer does not involve alice at all.
	assert.Equal(t, "txn-2", entries[0].ID)
	assert.Equal(t, domain.DirectionInbound, entries[0].Direction)
	assert.Equal(t, "Carol Dias", entries[0].CounterpartyName)

	assert.Equal(t, "txn-1", entries[1].ID)
	assert.Equal(t, domain.DirectionOutbound, entries[1].Direction)
	assert.Equal(t, "Bob Lima", entries[1].CounterpartyName)
}

func TestGetStatement_UnknownUser(t *testing.T) {
	svc := New(&fakeTxns{}, &fakeAccounts{byUserID: map[string]*domain.Account{}})

	_, err := svc.GetStatement(context.Background(), "user-ghost")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
