package transaction

import (
	"context"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"
)

type Service struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
}

func New(transactions repository.TransactionRepository, accounts repository.AccountRepository) *Service {
	return &Service{transactions: transactions, accounts: accounts}
}

// GetStatement returns every entry where the user's account is payer or
// payee, newest first, annotated with the direction and the counterparty's
// display name.
func (s *Service) GetStatement(ctx context.Context, userID string) ([]*domain.StatementEntry, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.transactions.ListStatement(ctx, account.ID)
}
