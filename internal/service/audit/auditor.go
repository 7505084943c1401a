package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"vbank-service/internal/domain"
	"vbank-service/internal/repository"

	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Recorder is the fire-and-forget audit sink consumed by the usecases.
// Recording never blocks the caller and never fails the operation being
// audited.
type Recorder interface {
	Record(userID, action, details string)
}

type event struct {
	UserID  string    `json:"user_id"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
	At      time.Time `json:"at"`
}

// Auditor drains audit events off a buffered channel on a background worker,
// persisting each to the audit_logs table and publishing a copy to kafka.
// Both writes are best-effort: a full queue or a failed write drops the event
// with a warning.
type Auditor struct {
	repo   repository.AuditRepository
	writer *kafka.Writer
	logger *zap.Logger

	ch     chan event
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewAuditor(repo repository.AuditRepository, writer *kafka.Writer, logger *zap.Logger) *Auditor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Auditor{
		repo:   repo,
		writer: writer,
		logger: logger,
		ch:     make(chan event, 256),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (a *Auditor) Start() {
	a.wg.Add(1)
	go a.run()
}

// Stop drains events already queued, then shuts the worker down.
func (a *Auditor) Stop() {
	close(a.ch)
	a.wg.Wait()
	a.cancel()
}

func (a *Auditor) Record(userID, action, details string) {
	select {
	case a.ch <- event{UserID: userID, Action: action, Details: details, At: time.Now().UTC()}:
	default:
		a.logger.Warn("audit queue full, dropping event",
			zap.String("user_id", userID),
			zap.String("action", action))
	}
}

func (a *Auditor) run() {
	defer a.wg.Done()

	for ev := range a.ch {
		a.persist(ev)
		a.publish(ev)
	}
}

func (a *Auditor) persist(ev event) {
	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	entry := &domain.AuditLog{
		ID:      ulid.Make().String(),
		UserID:  ev.UserID,
		Action:  ev.Action,
		Details: ev.Details,
	}
	if err := a.repo.Insert(ctx, entry); err != nil {
		a.logger.Warn("failed to persist audit event",
			zap.String("action", ev.Action),
			zap.Error(err))
	}
}

func (a *Auditor) publish(ev event) {
	if a.writer == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		a.logger.Warn("failed to encode audit event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	err = a.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.UserID),
		Value: payload,
	})
	if err != nil {
		a.logger.Warn("failed to publish audit event",
			zap.String("action", ev.Action),
			zap.Error(err))
	}
}
