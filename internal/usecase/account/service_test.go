package account

import (
	"context"
	"testing"

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

type fakeUsers struct {
	byID map[string]*domain.User
}

func (f *fakeUsers) CreateWithAccount(ctx context.Context, u *domain.User, a *domain.Account) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user", id)
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrNotFound("user", email)
}

func (f *fakeUsers) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	return false, nil
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestGetDashboard(t *testing.T) {
	accounts := &fakeAccounts{byUserID: map[string]*domain.Account{
		"user-alice": {
			ID:            "acc-alice",
			AccountNumber: "100001",
			Agency:        domain.DefaultAgency,
			Balance:       decimal.RequireFromString("1234.56"),
			UserID:        "user-alice",
			Status:        domain.AccountActive,
		},
	}}
	users := &fakeUsers{byID: map[string]*domain.User{
		"user-alice": {ID: "user-alice", FullName: "Alice Souza"},
	}}

	svc := New(accounts, users)
	dash, err := svc.GetDashboard(context.Background(), "user-alice")
	require.NoError(t, err)

	assert.Equal(t, "Alice Souza", dash.HolderName)
	assert.Equal(t, "100001", dash.AccountNumber)
	assert.Equal(t, domain.DefaultAgency, dash.Agency)
	assert.True(t, dash.Balance.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, domain.AccountActive, dash.Status)
}

func TestGetDashboard_UnknownUser(t *testing.T) {
	svc := New(&fakeAccounts{byUserID: map[string]*domain.Account{}}, &fakeUsers{byID: map[string]*domain.User{}})

	_, err := svc.GetDashboard(context.Background(), "user-ghost")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
