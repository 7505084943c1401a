package domain

import "time"

// Audit action tags recorded by the service.
const (
	AuditUserRegistered = "USER_REGISTERED"
	AuditUserLogin      = "USER_LOGIN"
	AuditPixKeyCreated  = "PIX_KEY_CREATED"
	AuditPixKeyDeleted  = "PIX_KEY_DELETED"
	AuditPixSent        = "PIX_SENT"
	AuditInvalidPixPin  = "INVALID_PIX_PIN"
)

type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
