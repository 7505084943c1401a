package pixkey

import (
	"context"
	"fmt"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"
	"vbank-service/internal/service/audit"
	"vbank-service/internal/usecase/transfer"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	keys     repository.PixKeyRepository
	accounts repository.AccountRepository
	users    repository.UserRepository
	auditor  audit.Recorder
	rdb      *redis.Client
	logger   *zap.Logger
}

func New(
	keys repository.PixKeyRepository,
	accounts repository.AccountRepository,
	users repository.UserRepository,
	auditor audit.Recorder,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		keys:     keys,
		accounts: accounts,
		users:    users,
		auditor:  auditor,
		rdb:      rdb,
		logger:   logger,
	}
}

// Register creates a new pix key for the user's account. The stored value is
// derived per key type; uniqueness is checked against the full key space,
// including the caller's own keys.
func (s *Service) Register(ctx context.Context, userID string, keyType domain.PixKeyType, rawValue string) (*domain.PixKey, error) {
	if !keyType.Valid() {
		return nil, domain.ErrInvalidData("keyType", "unknown pix key type")
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	holder, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	value, err := deriveKeyValue(keyType, rawValue, holder)
	if err != nil {
		return nil, err
	}

	exists, err := s.keys.ExistsByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate("pix key already in use by another account")
	}

	key := &domain.PixKey{
		ID:        ulid.Make().String(),
		KeyType:   keyType,
		KeyValue:  value,
		AccountID: account.ID,
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info("pix key registered",
		zap.String("user_id", userID),
		zap.String("key_type", string(keyType)))

	s.auditor.Record(userID, domain.AuditPixKeyCreated,
		fmt.Sprintf("new %s key registered: %s", keyType, value))

	return key, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*domain.PixKey, error) {
	return s.keys.ListByUserID(ctx, userID)
}

// Delete removes a key owned by the requesting user. A key that exists but
// belongs to someone else reports the same not-found error as a key that does
// not exist, so ownership cannot be probed.
func (s *Service) Delete(ctx context.Context, keyID, userID string) error {
	key, err := s.keys.GetByID(ctx, keyID)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if key.AccountID != account.ID {
		return domain.ErrNotFound("pix key", keyID)
	}

	if err := s.keys.Delete(ctx, keyID); err != nil {
		return err
	}

	// Drop the cached receiver lookup so the deleted key stops resolving
	// immediately instead of for the remainder of the cache TTL.
	s.invalidateReceiverCache(ctx, key.KeyValue)

	s.auditor.Record(userID, domain.AuditPixKeyDeleted,
		fmt.Sprintf("pix key deleted: %s", key.KeyValue))

	return nil
}

func (s *Service) invalidateReceiverCache(ctx context.Context, keyValue string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, transfer.ReceiverCacheKey(keyValue)).Err(); err != nil {
		s.logger.Warn("failed to invalidate receiver cache",
			zap.String("key_value", keyValue),
			zap.Error(err))
	}
}
