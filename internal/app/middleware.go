package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/seatbook/api/internal/domain"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) addRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type tokenClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// authenticate verifies a bearer token when one is present and stores the
// resulting identity in the request context. Requests without a token pass
// through anonymously; requireAuthentication decides whether that matters.
// Token issuance belongs to the external auth service, this middleware only
// consumes its verified claims.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		identity, err := app.verifyToken(token)
		if err != nil {
			app.contextGetLogger(r).Warn("rejected bearer token", "error", err)
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, contextSetIdentity(r, identity))
	})
}

func (app *Application) verifyToken(token string) (domain.Identity, error) {
	var claims tokenClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(app.config.JWTSecret), nil
	})
	if err != nil {
		return domain.Identity{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return domain.Identity{UserID: userID, IsAdmin: claims.IsAdmin}, nil
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(identityContextKey).(domain.Identity)
		if !ok {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := app.contextGetIdentity(r)
		if !identity.IsAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
