package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"
	"vbank-service/internal/service/audit"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	idempotencyKeyPrefix = "idem:pix:"
	idempotencyTTL       = 24 * time.Hour

	receiverCachePrefix = "receiver:pix:"
	receiverCacheTTL    = 5 * time.Minute

	maxDescriptionLen = 255
)

type Request struct {
	TargetKey      string          `json:"target_key"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionPin string          `json:"transaction_pin"`
	Description    string          `json:"description"`
	IdempotencyKey *string         `json:"-"`
}

type AccountInfo struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Bank     string `json:"bank"`
	Agency   string `json:"agency"`
	Account  string `json:"account"`
}

// Receipt is the completed-transfer view returned to the caller. Both parties
// are masked the same way the receiver lookup masks them.
type Receipt struct {
	TransactionID string                   `json:"transaction_id"`
	Amount        decimal.Decimal          `json:"amount"`
	Timestamp     time.Time                `json:"timestamp"`
	Description   string                   `json:"description"`
	Status        domain.TransactionStatus `json:"status"`
	Payer         AccountInfo              `json:"payer"`
	Payee         AccountInfo              `json:"payee"`
}

// ReceiverDetails is the privacy-masked view of a key's owner shown to a
// payer before they confirm a transfer.
type ReceiverDetails struct {
	FullName      string `json:"full_name"`
	Document      string `json:"document"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	Agency        string `json:"agency"`
}

type Service struct {
	accounts     repository.AccountRepository
	users        repository.UserRepository
	keys         repository.PixKeyRepository
	transactions repository.TransactionRepository
	auditor      audit.Recorder
	rdb          *redis.Client
	logger       *zap.Logger

	bankName  string
	maxAmount decimal.Decimal
	pinLength int
}

func New(
	accounts repository.AccountRepository,
	users repository.UserRepository,
	keys repository.PixKeyRepository,
	transactions repository.TransactionRepository,
	auditor audit.Recorder,
	rdb *redis.Client,
	logger *zap.Logger,
	bankName string,
	maxAmount decimal.Decimal,
	pinLength int,
) *Service {
	return &Service{
		accounts:     accounts,
		users:        users,
		keys:         keys,
		transactions: transactions,
		auditor:      auditor,
		rdb:          rdb,
		logger:       logger,
		bankName:     bankName,
		maxAmount:    maxAmount,
		pinLength:    pinLength,
	}
}

// Execute runs the full transfer pipeline: validate, resolve both parties,
// authorize, then apply debit+credit+ledger append atomically. Any failure
// before the atomic unit leaves no trace; the atomic unit itself either
// commits fully or not at all.
func (s *Service) Execute(ctx context.Context, userID string, req Request) (*Receipt, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	payerAccount, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	payer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := s.keys.FindByValue(ctx, strings.TrimSpace(req.TargetKey))
	if err != nil {
		return nil, err
	}
	payeeAccount, err := s.accounts.GetByID(ctx, key.AccountID)
	if err != nil {
		return nil, err
	}
	payee, err := s.users.GetByID(ctx, payeeAccount.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(payer, payerAccount, payeeAccount, req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != nil {
		if receipt, err := s.replayIfDuplicate(ctx, req, payer, payerAccount, payee, payeeAccount); receipt != nil || err != nil {
			return receipt, err
		}
	}

	txn, err := s.transactions.ExecuteTransfer(ctx, &domain.TransferOrder{
		PayerAccountID: payerAccount.ID,
		PayeeAccountID: payeeAccount.ID,
		Amount:         req.Amount,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		// Free the token so the caller can retry; nothing was recorded.
		s.releaseReservation(ctx, req.IdempotencyKey)
		return nil, err
	}
	if req.IdempotencyKey != nil {
		// The store replays an earlier entry when the key was already used; a
		// replay that was not made by this payer for this amount must not be
		// dressed up as this submission's receipt.
		if err := verifyReplay(txn, payerAccount.ID, req.Amount); err != nil {
			return nil, err
		}
	}

	s.logger.Info("pix transfer completed",
		zap.String("transaction_id", txn.ID),
		zap.String("payer_account", payerAccount.AccountNumber),
		zap.String("payee_account", payeeAccount.AccountNumber),
		zap.String("amount", txn.Amount.StringFixed(2)))

	s.auditor.Record(userID, domain.AuditPixSent,
		fmt.Sprintf("pix of %s to key %s (account %s)",
			txn.Amount.StringFixed(2), req.TargetKey, payeeAccount.AccountNumber))

	return s.receipt(txn, payer, payerAccount, payee, payeeAccount), nil
}

func (s *Service) validate(req Request) error {
	if strings.TrimSpace(req.TargetKey) == "" {
		return domain.ErrInvalidData("targetKey", "target pix key is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidData("amount", "amount must be greater than zero")
	}
	if req.Amount.GreaterThan(s.maxAmount) {
		return domain.ErrInvalidData("amount",
			fmt.Sprintf("amount exceeds the per-transfer limit of %s", s.maxAmount.StringFixed(2)))
	}
	if !isDigits(req.TransactionPin) || len(req.TransactionPin) != s.pinLength {
		return domain.ErrInvalidData("transactionPin",
			fmt.Sprintf("transaction PIN must be %d digits", s.pinLength))
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		return domain.ErrInvalidData("description",
			fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	return nil
}

func (s *Service) authorize(payer *domain.User, payerAccount, payeeAccount *domain.Account, req Request) error {
	if bcrypt.CompareHashAndPassword([]byte(payer.TransactionPin), []byte(req.TransactionPin)) != nil {
		// Failed PIN attempts are audited before the error is raised.
		s.auditor.Record(payer.ID, domain.AuditInvalidPixPin, "incorrect transaction PIN on pix transfer")
		return domain.ErrInvalidPin()
	}
	if payerAccount.Status != domain.AccountActive {
		return domain.ErrInactiveAccount(payerAccount.Status)
	}
	if payeeAccount.Status != domain.AccountActive {
		return domain.ErrInvalidData("targetKey",
			fmt.Sprintf("target account for key %s is not active", req.TargetKey))
	}
	if payerAccount.ID == payeeAccount.ID {
		return domain.ErrInvalidData("targetKey", "cannot transfer to your own account")
	}
	return nil
}

// replayIfDuplicate reserves the idempotency token in redis; when the token
// was already used, the originally recorded transaction is returned instead
// of re-applying the transfer. The unique constraint on the transactions
// table remains the authoritative guard; this is only the fast path.
func (s *Service) replayIfDuplicate(ctx context.Context, req Request, payer *domain.User, payerAccount *domain.Account, payee *domain.User, payeeAccount *domain.Account) (*Receipt, error) {
	if s.rdb == nil {
		return nil, nil
	}
	token := *req.IdempotencyKey

	reserved, err := s.rdb.SetNX(ctx, idempotencyKeyPrefix+token, payerAccount.ID, idempotencyTTL).Result()
	if err != nil {
		// Redis being down must not block transfers; the DB constraint
		// still prevents duplicates.
		s.logger.Warn("idempotency reservation failed", zap.Error(err))
		return nil, nil
	}
	if reserved {
		return nil, nil
	}

	existing, err := s.transactions.FindByIdempotencyKey(ctx, token)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			// Reserved but not yet committed by the first submission.
			return nil, domain.ErrDuplicate("a transfer with this idempotency key is already in progress")
		}
		return nil, err
	}
	if err := verifyReplay(existing, payerAccount.ID, req.Amount); err != nil {
		return nil, err
	}
	return s.receipt(existing, payer, payerAccount, payee, payeeAccount), nil
}

// verifyReplay guards the replay path: a previously recorded entry may only
// stand in for this submission when it was made by the same payer for the same
// amount. Anything else is key reuse, not a retry.
func verifyReplay(txn *domain.Transaction, payerAccountID string, amount decimal.Decimal) error {
	if txn.PayerAccountID != payerAccountID || !txn.Amount.Equal(amount) {
		return domain.ErrDuplicate("idempotency key was already used by a different transfer")
	}
	return nil
}

// releaseReservation frees the redis token after a failed apply so the same
// key can be retried.
func (s *Service) releaseReservation(ctx context.Context, token *string) {
	if s.rdb == nil || token == nil {
		return
	}
	if err := s.rdb.Del(ctx, idempotencyKeyPrefix+*token).Err(); err != nil {
		s.logger.Warn("failed to release idempotency reservation", zap.Error(err))
	}
}

func (s *Service) receipt(txn *domain.Transaction, payer *domain.User, payerAccount *domain.Account, payee *domain.User, payeeAccount *domain.Account) *Receipt {
	return &Receipt{
		TransactionID: txn.ID,
		Amount:        txn.Amount,
		Timestamp:     txn.CreatedAt,
		Description:   txn.Description,
		Status:        txn.Status,
		Payer:         s.accountInfo(payer, payerAccount),
		Payee:         s.accountInfo(payee, payeeAccount),
	}
}

func (s *Service) accountInfo(u *domain.User, a *domain.Account) AccountInfo {
	return AccountInfo{
		Name:     u.FullName,
		Document: maskDocument(u.Document),
		Bank:     s.bankName,
		Agency:   a.Agency,
		Account:  a.AccountNumber,
	}
}

// CheckReceiver resolves a pix key to a privacy-masked view of its owner.
func (s *Service) CheckReceiver(ctx context.Context, keyValue string) (*ReceiverDetails, error) {
	keyValue = strings.TrimSpace(keyValue)
	if keyValue == "" {
		return nil, domain.ErrInvalidData("key", "pix key is required")
	}

	if cached := s.cachedReceiver(ctx, keyValue); cached != nil {
		return cached, nil
	}

	key, err := s.keys.FindByValue(ctx, keyValue)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByID(ctx, key.AccountID)
	if err != nil {
		return nil, err
	}
	holder, err := s.users.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	details := &ReceiverDetails{
		FullName:      maskName(holder.FullName),
		Document:      maskDocument(holder.Document),
		BankName:      s.bankName,
		AccountNumber: account.AccountNumber,
		Agency:        account.Agency,
	}
	s.cacheReceiver(ctx, keyValue, details)
	return details, nil
}

// ReceiverCacheKey is the redis key under which CheckReceiver lookups for a
// pix key value are cached. Flows that retire a key must invalidate it.
func ReceiverCacheKey(keyValue string) string {
	return receiverCachePrefix + keyValue
}

func (s *Service) cachedReceiver(ctx context.Context, keyValue string) *ReceiverDetails {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, ReceiverCacheKey(keyValue)).Bytes()
	if err != nil {
		return nil
	}
	var details ReceiverDetails
	if json.Unmarshal(raw, &details) != nil {
		return nil
	}
	return &details
}

func (s *Service) cacheReceiver(ctx context.Context, keyValue string, details *ReceiverDetails) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, ReceiverCacheKey(keyValue), raw, receiverCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache receiver lookup", zap.Error(err))
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
