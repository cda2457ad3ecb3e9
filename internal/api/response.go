package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/craftfolio/portfolio-api/internal/metrics"
	"github.com/craftfolio/portfolio-api/internal/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

type idResponse struct {
	ID string `json:"id"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Error("failed to encode response", "error", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	metrics.RequestErrors.WithLabelValues(kindLabel(kind)).Inc()

	// Non-domain errors must not leak infrastructure detail.
	msg := err.Error()
	var domainErr *model.Error
	if !errors.As(err, &domainErr) {
		msg = "internal server error"
	}

	a.writeJSON(w, statusOf(kind), messageResponse{Message: msg})
}

func statusOf(kind model.Kind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindBadRequest, model.KindValidation, model.KindPasswordPolicy:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func kindLabel(kind model.Kind) string {
	switch kind {
	case model.KindNotFound:
		return "not_found"
	case model.KindConflict:
		return "conflict"
	case model.KindUnauthorized:
		return "unauthorized"
	case model.KindBadRequest:
		return "bad_request"
	case model.KindValidation:
		return "validation"
	case model.KindPasswordPolicy:
		return "password_policy"
	default:
		return "internal"
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.BadRequest("invalid request body")
	}
	return nil
}
