package router

import (
	"net/http"

	"go-atm/handler"
)

type Handlers struct {
	Session     *handler.SessionHandler
	Account     *handler.AccountHandler
	Transaction *handler.TransactionHandler
	Admin       *handler.AdminHandler
	Auth        func(http.Handler) http.Handler
	AdminOnly   func(http.Handler) http.Handler
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.Handle("POST /cards/verify", handler.ErrorHandlingMiddleware(h.Session.VerifyCard))
	mux.Handle("POST /sessions", handler.ErrorHandlingMiddleware(h.Session.OpenSession))

	mux.Handle("DELETE /api/session", h.Auth(handler.ErrorHandlingMiddleware(h.Session.CloseSession)))
	mux.Handle("GET /api/balance", h.Auth(handler.ErrorHandlingMiddleware(h.Account.Balance)))
	mux.Handle("POST /api/withdrawals", h.Auth(handler.ErrorHandlingMiddleware(h.Account.Withdraw)))
	mux.Handle("POST /api/deposits", h.Auth(handler.ErrorHandlingMiddleware(h.Account.Deposit)))
	mux.Handle("PUT /api/pin", h.Auth(handler.ErrorHandlingMiddleware(h.Account.ChangePin)))
	mux.Handle("GET /api/transactions", h.Auth(handler.ErrorHandlingMiddleware(h.Transaction.ListTransactions)))

	mux.Handle("GET /admin/accounts", h.AdminOnly(handler.ErrorHandlingMiddleware(h.Admin.ListAccounts)))
	mux.Handle("POST /admin/accounts", h.AdminOnly(handler.ErrorHandlingMiddleware(h.Admin.ProvisionAccount)))

	return mux
}
