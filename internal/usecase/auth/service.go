package auth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"
	"vbank-service/internal/service/audit"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer        = "vbank"
	minPasswordLen     = 8
	accountNumberTries = 3
)

type RegisterRequest struct {
	FullName       string `json:"full_name"`
	Document       string `json:"document"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	TransactionPin string `json:"transaction_pin"`
}

type LoginResult struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type Service struct {
	users   repository.UserRepository
	auditor audit.Recorder
	logger  *zap.Logger

	jwtSecret []byte
	tokenTTL  time.Duration
	pinLength int
}

func New(
	users repository.UserRepository,
	auditor audit.Recorder,
	logger *zap.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
	pinLength int,
) *Service {
	return &Service{
		users:     users,
		auditor:   auditor,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		pinLength: pinLength,
	}
}

// Register creates the user and automatically opens their account with a
// zero balance under the default agency.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *domain.Account, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, nil, err
	}

	if exists, err := s.users.ExistsByDocument(ctx, req.Document); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, domain.ErrDuplicate("document already registered")
	}
	if exists, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, domain.ErrDuplicate("email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, domain.ErrInternal(err)
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.TransactionPin), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, domain.ErrInternal(err)
	}

	user := &domain.User{
		ID:             ulid.Make().String(),
		FullName:       strings.TrimSpace(req.FullName),
		Document:       req.Document,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   string(passwordHash),
		TransactionPin: string(pinHash),
	}

	// Account numbers are random; retry a few times in case one collides
	// with an existing account.
	for attempt := 1; ; attempt++ {
		account := &domain.Account{
			ID:            ulid.Make().String(),
			AccountNumber: generateAccountNumber(),
			Agency:        domain.DefaultAgency,
			Balance:       decimal.Zero,
			UserID:        user.ID,
			Status:        domain.AccountActive,
		}

		err := s.users.CreateWithAccount(ctx, user, account)
		if err == nil {
			s.auditor.Record(user.ID, domain.AuditUserRegistered,
				fmt.Sprintf("new account created: %s", account.AccountNumber))
			return user, account, nil
		}
		if de := domain.AsError(err); de.Kind == domain.KindDuplicate &&
			de.Field == "accountNumber" && attempt < accountNumberTries {
			continue
		}
		return nil, nil, err
	}
}

func (s *Service) validateRegistration(req RegisterRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return domain.ErrInvalidData("fullName", "full name is required")
	}
	document := strings.TrimSpace(req.Document)
	if document == "" {
		return domain.ErrInvalidData("document", "document is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.ErrInvalidData("email", "a valid email is required")
	}
	if len(req.Password) < minPasswordLen {
		return domain.ErrInvalidData("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if len(req.TransactionPin) != s.pinLength || !isDigits(req.TransactionPin) {
		return domain.ErrInvalidData("transactionPin",
			fmt.Sprintf("transaction PIN must be %d digits", s.pinLength))
	}
	return nil
}

// Login verifies credentials and issues an access token. Failures are always
// generic-messaged so email enumeration is not possible.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrInvalidCredentials()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials()
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}

	s.auditor.Record(user.ID, domain.AuditUserLogin, "login successful")

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": userID,
		"iss": tokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func generateAccountNumber() string {
	return fmt.Sprintf("%06d", rand.IntN(900000)+100000)
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
