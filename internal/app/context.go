package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/seatbook/api/internal/domain"
)

type contextKey string

const (
	identityContextKey = contextKey("identity")
	loggerContextKey   = contextKey("logger")
)

func contextSetIdentity(r *http.Request, identity domain.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

// contextGetIdentity returns the verified caller identity. It must only be
// used on routes behind requireAuthentication.
func (app *Application) contextGetIdentity(r *http.Request) domain.Identity {
	identity, ok := r.Context().Value(identityContextKey).(domain.Identity)
	if !ok {
		panic("missing identity in request context")
	}

	return identity
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
