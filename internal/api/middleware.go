package api

import (
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/auth"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Authenticate verifies the bearer token and loads the caller's user
// record into the request context. The lookup goes through the auth
// mailbox like every other read, so a deleted user's token stops working
// immediately.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, tokenString, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			a.writeError(w, model.Unauthorized("missing or malformed authorization header"))
			return
		}

		userID, err := a.jwt.Parse(tokenString)
		if err != nil {
			a.writeError(w, err)
			return
		}

		msg := auth.GetUserMsg{UserID: userID, Reply: actor.NewReply[model.User]()}
		user, err := actor.Call(r.Context(), a.actors.Auth, auth.Message(msg), msg.Reply)
		if err != nil {
			if model.KindOf(err) == model.KindNotFound {
				err = model.Unauthorized("invalid or expired token")
			}
			a.writeError(w, err)
			return
		}

		ctx := withAuthUser(r.Context(), AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request with status and duration.
func (a *API) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		a.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
