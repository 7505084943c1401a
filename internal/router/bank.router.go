package router

import (
	"net/http"

	"vbank-service/internal/handler"
	"vbank-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	r chi.Router,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	pixKeyHandler *handler.PixKeyHandler,
	transferHandler *handler.TransferHandler,
	transactionHandler *handler.TransactionHandler,
	auth *middleware.AuthMiddleware,
) chi.Router {

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("vbank service is running"))
	})

	// ---------- Public ----------
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", authHandler.Register)
		ar.Post("/login", authHandler.Login)
	})

	// ---------- Authenticated ----------
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Require())

		pr.Get("/accounts/dashboard", accountHandler.Dashboard)

		pr.Route("/pix-keys", func(kr chi.Router) {
			kr.Get("/", pixKeyHandler.List)
			kr.Post("/", pixKeyHandler.Create)
			kr.Delete("/{id}", pixKeyHandler.Delete)
		})

		pr.Route("/transfers", func(tr chi.Router) {
			tr.Post("/pix", transferHandler.ExecutePix)
			tr.Get("/check-receiver/{key}", transferHandler.CheckReceiver)
		})

		pr.Get("/transactions/statement", transactionHandler.Statement)
	})

	return r
}
