package api

import (
	"context"
	"net/http"
)

// Pinger is the readiness probe dependency, satisfied by the postgres
// connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

func (a *API) Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			a.log.Error("health check failed", "error", err)
			a.writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "database unavailable"})
			return
		}
		a.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	}
}
