package repository

import (
	"context"

	"vbank-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
}

type auditRepo struct {
	db *pgxpool.Pool
}

func NewAuditRepo(db *pgxpool.Pool) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, entry.ID, entry.UserID, entry.Action, entry.Details)
	if err != nil {
		return domain.ErrInternal(err)
	}
	return nil
}
