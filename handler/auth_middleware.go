package handler

import (
	"context"
	"net/http"
	"strings"

	"go-atm/common"
	"go-atm/service"
)

type contextKey string

const SessionKey contextKey = "session"

// AdminSecretHeader carries the admin credential on /admin routes.
const AdminSecretHeader = "X-Admin-Secret"

// AuthMiddleware resolves the bearer token to a live session and stores it in
// the request context.
func AuthMiddleware(tokens *service.TokenService, directory *service.AccountDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			claims, err := tokens.Parse(headerParts[1])
			if err != nil {
				serviceError(err).Send(w)
				return
			}

			session, err := directory.Session(claims.ID)
			if err != nil {
				serviceError(err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware gates provisioning routes behind the admin credential.
func AdminMiddleware(directory *service.AccountDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !directory.VerifyAdmin(r.Header.Get(AdminSecretHeader)) {
				err := common.NewAppError(http.StatusForbidden, "Access denied. Admin credential required.", nil)
				err.Send(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionFrom returns the request's session and the account it had bound at
// the time of the call. A session ended concurrently yields 401.
func sessionFrom(r *http.Request) (*service.Session, *service.Account, *common.AppError) {
	s, _ := r.Context().Value(SessionKey).(*service.Session)
	acc, ok := s.BoundAccount()
	if !ok {
		return nil, nil, common.NewAppError(http.StatusUnauthorized, "No active session", nil)
	}
	return s, acc, nil
}
