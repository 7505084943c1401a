package account

import (
	"context"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"

	"github.com/shopspring/decimal"
)

type Dashboard struct {
	HolderName    string               `json:"holder_name"`
	AccountNumber string               `json:"account_number"`
	Agency        string               `json:"agency"`
	Balance       decimal.Decimal      `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
}

type Service struct {
	accounts repository.AccountRepository
	users    repository.UserRepository
}

func New(accounts repository.AccountRepository, users repository.UserRepository) *Service {
	return &Service{accounts: accounts, users: users}
}

func (s *Service) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	holder, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		HolderName:    holder.FullName,
		AccountNumber: account.AccountNumber,
		Agency:        account.Agency,
		Balance:       account.Balance,
		Status:        account.Status,
	}, nil
}
