package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	jwtutil "pubboard/app/jwt"
	"pubboard/app/services"
)

type ctxKey int

const userKey ctxKey = 1

// TokenHeader carries the bearer token on every protected route. Login
// also sets it as a cookie for browser clients.
const TokenHeader = "x-access-token"

type Auth struct {
	Signer *jwtutil.Signer
	Users  *services.UserService
}

// RequireAuth resolves the x-access-token header to a user and stores it
// on the request context. A missing header, a bad signature, an expired
// token or a vanished user all end the request with 401.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			unauthorized(w, "Token is missing")
			return
		}
		claims, err := a.Signer.Parse(token)
		if err != nil {
			unauthorized(w, "Token is invalid")
			return
		}
		user, err := a.Users.GetByID(claims.UserID)
		if err != nil {
			unauthorized(w, "Token is invalid")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
