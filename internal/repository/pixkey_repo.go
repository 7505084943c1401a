package repository

import (
	"context"
	"errors"

	"vbank-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PixKeyRepository interface {
	Create(ctx context.Context, k *domain.PixKey) error
	GetByID(ctx context.Context, id string) (*domain.PixKey, error)
	FindByValue(ctx context.Context, value string) (*domain.PixKey, error)
	ExistsByValue(ctx context.Context, value string) (bool, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.PixKey, error)
	Delete(ctx context.Context, id string) error
}

type pixKeyRepo struct {
	db *pgxpool.Pool
}

func NewPixKeyRepo(db *pgxpool.Pool) PixKeyRepository {
	return &pixKeyRepo{db: db}
}

func (r *pixKeyRepo) Create(ctx context.Context, k *domain.PixKey) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO pix_keys (id, key_type, key_value, account_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`, k.ID, k.KeyType, k.KeyValue, k.AccountID).Scan(&k.CreatedAt)
	if err != nil {
		// The unique index on key_value is the authoritative uniqueness
		// guard; the usecase-level existence check is only a fast path.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicate("pix key already in use by another account")
		}
		return domain.ErrInternal(err)
	}
	return nil
}

const pixKeyColumns = `id, key_type, key_value, account_id, created_at`

func (r *pixKeyRepo) GetByID(ctx context.Context, id string) (*domain.PixKey, error) {
	return r.getOne(ctx, `SELECT `+pixKeyColumns+` FROM pix_keys WHERE id = $1`, id)
}

func (r *pixKeyRepo) FindByValue(ctx context.Context, value string) (*domain.PixKey, error) {
	return r.getOne(ctx, `SELECT `+pixKeyColumns+` FROM pix_keys WHERE key_value = $1`, value)
}

func (r *pixKeyRepo) getOne(ctx context.Context, query, arg string) (*domain.PixKey, error) {
	var k domain.PixKey
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&k.ID, &k.KeyType, &k.KeyValue, &k.AccountID, &k.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound("pix key", arg)
		}
		return nil, domain.ErrInternal(err)
	}
	return &k, nil
}

func (r *pixKeyRepo) ExistsByValue(ctx context.Context, value string) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pix_keys WHERE key_value = $1)`, value).Scan(&found)
	if err != nil {
		return false, domain.ErrInternal(err)
	}
	return found, nil
}

func (r *pixKeyRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.PixKey, error) {
	rows, err := r.db.Query(ctx, `
		SELECT k.id, k.key_type, k.key_value, k.account_id, k.created_at
		FROM pix_keys k
		JOIN accounts a ON a.id = k.account_id
		WHERE a.user_id = $1
		ORDER BY k.created_at ASC
	`, userID)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	defer rows.Close()

	var keys []*domain.PixKey
	for rows.Next() {
		var k domain.PixKey
		if err := rows.Scan(&k.ID, &k.KeyType, &k.KeyValue, &k.AccountID, &k.CreatedAt); err != nil {
			return nil, domain.ErrInternal(err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (r *pixKeyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pix_keys WHERE id = $1`, id)
	if err != nil {
		return domain.ErrInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("pix key", id)
	}
	return nil
}
