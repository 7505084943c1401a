package repository

import (
	"context"
	"errors"

	"vbank-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type UserRepository interface {
	// CreateWithAccount persists the user and their automatically opened
	// account as one transaction.
	CreateWithAccount(ctx context.Context, u *domain.User, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByDocument(ctx context.Context, document string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateWithAccount(ctx context.Context, u *domain.User, a *domain.Account) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.ErrInternal(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, full_name, document, email, password_hash, transaction_pin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, u.ID, u.FullName, u.Document, u.Email, u.PasswordHash, u.TransactionPin)
	if err != nil {
		return mapUserInsertError(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (id, account_number, agency, balance, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, a.ID, a.AccountNumber, a.Agency, a.Balance, a.UserID, a.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Tagged with the field so callers can tell a number collision
			// apart from a duplicate document or email.
			dup := domain.ErrDuplicate("account number already in use")
			dup.Field = "accountNumber"
			return dup
		}
		return domain.ErrInternal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal(err)
	}
	return nil
}

func mapUserInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "users_document_key":
			return domain.ErrDuplicate("document already registered")
		case "users_email_key":
			return domain.ErrDuplicate("email already registered")
		}
		return domain.ErrDuplicate("user already registered")
	}
	return domain.ErrInternal(err)
}

const userColumns = `id, full_name, document, email, password_hash, transaction_pin, created_at`

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, query, arg string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Document, &u.Email, &u.PasswordHash, &u.TransactionPin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound("user", arg)
		}
		return nil, domain.ErrInternal(err)
	}
	return &u, nil
}

func (r *userRepo) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE document = $1)`, document)
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *userRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var found bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, domain.ErrInternal(err)
	}
	return found, nil
}
