package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const (
	contextKeyUserId  = contextKey("userID")
	contextKeyIsAdmin = contextKey("isAdmin")
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

// authenticate resolves a Bearer token into a user identity on the request
// context. Requests without a token pass through anonymously; the
// requireAuthentication and requireAdmin middlewares enforce access.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		claims, err := app.tokens.Parse(headerParts[1])
		if err != nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		userId, err := claims.UserID()
		if err != nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserId, userId)
		ctx = context.WithValue(ctx, contextKeyIsAdmin, claims.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := r.Context().Value(contextKeyUserId).(int)
		if !ok || userId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := r.Context().Value(contextKeyUserId).(int)
		if !ok || userId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		isAdmin, ok := r.Context().Value(contextKeyIsAdmin).(bool)
		if !ok || !isAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(contextKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}
