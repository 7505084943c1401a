package server

import (
	"context"
	"log"
	"net/http"

	"vbank-service/internal/config"
	"vbank-service/internal/handler"
	"vbank-service/internal/middleware"
	"vbank-service/internal/repository"
	"vbank-service/internal/router"
	"vbank-service/internal/service/audit"
	accountuc "vbank-service/internal/usecase/account"
	authuc "vbank-service/internal/usecase/auth"
	pixkeyuc "vbank-service/internal/usecase/pixkey"
	transactionuc "vbank-service/internal/usecase/transaction"
	transferuc "vbank-service/internal/usecase/transfer"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Server struct {
	HTTP    *http.Server
	auditor *audit.Auditor
	writer  *kafka.Writer
}

func New(cfg config.AppConfig) *Server {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("[Redis] connected successfully")

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.AuditTopic,
		Balancer: &kafka.LeastBytes{},
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	pixKeyRepo := repository.NewPixKeyRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// --- Audit sink ---
	auditor := audit.NewAuditor(auditRepo, writer, logger)
	auditor.Start()

	// --- Usecases ---
	authUC := authuc.New(userRepo, auditor, logger, cfg.JWTSecret, cfg.TokenTTL, cfg.PinLength)
	accountUC := accountuc.New(accountRepo, userRepo)
	pixKeyUC := pixkeyuc.New(pixKeyRepo, accountRepo, userRepo, auditor, rdb, logger)
	transferUC := transferuc.New(accountRepo, userRepo, pixKeyRepo, transactionRepo,
		auditor, rdb, logger, cfg.BankName, cfg.MaxTransfer, cfg.PinLength)
	transactionUC := transactionuc.New(transactionRepo, accountRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authUC, logger)
	accountHandler := handler.NewAccountHandler(accountUC, logger)
	pixKeyHandler := handler.NewPixKeyHandler(pixKeyUC, logger)
	transferHandler := handler.NewTransferHandler(transferUC, logger)
	transactionHandler := handler.NewTransactionHandler(transactionUC, logger)

	authMw := middleware.NewAuthMiddleware(cfg.JWTSecret, logger)

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, accountHandler, pixKeyHandler,
		transferHandler, transactionHandler, authMw)

	return &Server{
		HTTP: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: r,
		},
		auditor: auditor,
		writer:  writer,
	}
}

func (s *Server) ListenAndServe() error {
	return s.HTTP.ListenAndServe()
}

// Shutdown stops the HTTP listener, drains queued audit events and closes
// the kafka writer.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.HTTP.Shutdown(ctx)
	s.auditor.Stop()
	if cerr := s.writer.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
