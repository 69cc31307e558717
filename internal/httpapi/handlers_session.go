package httpapi

import (
	"net/http"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/space"
)

type scanRequest struct {
	Payload             string                   `json:"payload"`
	Category            attendance.TaskCategory  `json:"category"`
	RestrictionOverride *space.RestrictionConfig `json:"restriction_override,omitempty"`
}

func (a *API) handleScan(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := a.engine.Scan(r.Context(), ident, attendance.ScanRequest{
		Payload:             req.Payload,
		Category:            req.Category,
		RestrictionOverride: req.RestrictionOverride,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type startSessionRequest struct {
	SpaceID             string                   `json:"space_id"`
	Category            attendance.TaskCategory  `json:"category"`
	RestrictionOverride *space.RestrictionConfig `json:"restriction_override,omitempty"`
}

func (a *API) handleStartSession(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := a.spaces.Get(r.Context(), req.SpaceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	iv, err := a.engine.StartSession(r.Context(), ident, target, attendance.StartRequest{
		SpaceID:             req.SpaceID,
		Category:            req.Category,
		RestrictionOverride: req.RestrictionOverride,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, iv)
}

type endSessionRequest struct {
	SpaceName string `json:"space_name"`
}

func (a *API) handleEndSession(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	var req endSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	spaceName := req.SpaceName
	if spaceName == "" {
		current, err := a.spaces.Current(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		spaceName = current.Name
	}

	iv, err := a.engine.EndSession(r.Context(), ident.Username, spaceName)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interval": iv})
}

func (a *API) handleBlocking(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no identity")
		return
	}

	current, err := a.spaces.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	blocking, err := a.engine.IsBlocking(r.Context(), ident.Username, current.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"blocking": blocking})
}

func (a *API) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := a.engine.ClearHistory(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
