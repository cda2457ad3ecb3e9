package api

import (
	"net/http"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/actor/session"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// RefreshToken rotates the refresh token presented in the cookie and
// returns a fresh pair.
func (a *API) RefreshToken(w http.ResponseWriter, r *http.Request) {
	presented, err := refreshTokenFromRequest(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	msg := session.RefreshMsg{Token: presented, Reply: actor.NewReply[model.TokenPair]()}
	pair, err := actor.Call(r.Context(), a.actors.Session, session.Message(msg), msg.Reply)
	if err != nil {
		// A rejected token is useless to the client; drop the cookie.
		clearRefreshCookie(w)
		a.writeError(w, err)
		return
	}

	setRefreshCookie(w, pair.RefreshToken)
	a.writeJSON(w, http.StatusOK, pair)
}

// Logout revokes the presented refresh token and clears the cookie.
// Succeeds whether or not a valid cookie was presented.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	presented, err := refreshTokenFromRequest(r)
	if err == nil {
		msg := session.LogoutMsg{Token: presented, Reply: actor.NewReply[struct{}]()}
		if _, err := actor.Call(r.Context(), a.actors.Session, session.Message(msg), msg.Reply); err != nil {
			a.writeError(w, err)
			return
		}
	}

	clearRefreshCookie(w)
	a.writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}
