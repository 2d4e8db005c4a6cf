package api

import (
	"database/sql"
	"net/http"

	"github.com/zigam/sejem/internal/ledger"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, lgr *ledger.Ledger, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{DB: db, Ledger: lgr}
	walletHandler := &WalletHandler{DB: db}
	eventsHandler := &EventsHandler{Bus: lgr.Bus()}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: account creation and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Sessions.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Item lifecycle. There is deliberately no browse endpoint; items are
	// addressed by id.
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("POST /api/items/{id}/purchase", authMW(http.HandlerFunc(itemsHandler.Purchase)))
	mux.Handle("POST /api/items/{id}/ship", authMW(http.HandlerFunc(itemsHandler.Ship)))
	mux.Handle("POST /api/items/{id}/receive", authMW(http.HandlerFunc(itemsHandler.Receive)))
	mux.Handle("GET /api/items/{id}/events", authMW(http.HandlerFunc(itemsHandler.GetEvents)))
	mux.Handle("PUT /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.UploadImage)))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	// Wallets.
	mux.Handle("GET /api/wallet", authMW(http.HandlerFunc(walletHandler.Get)))
	mux.Handle("POST /api/wallet/deposit", authMW(http.HandlerFunc(walletHandler.Deposit)))
	mux.Handle("GET /api/wallet/payments", authMW(http.HandlerFunc(walletHandler.Payments)))

	// Live event stream for observers.
	mux.Handle("GET /api/events/stream", authMW(http.HandlerFunc(eventsHandler.Stream)))

	return mux
}
