package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps domain sentinels onto HTTP statuses. Every failure
// in the taxonomy is advisory: the client may always retry.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, attendance.ErrNotEligible):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, space.ErrTagNotFound), errors.Is(err, space.ErrSpaceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, attendance.ErrSessionActive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, attendance.ErrNoTaskCategory), errors.Is(err, attendance.ErrNotAuthorized):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, identity.ErrInvalidInput),
		errors.Is(err, space.ErrInvalidInput),
		errors.Is(err, attendance.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
