package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/tagio"
)

func (a *API) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := a.spaces.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if spaces == nil {
		spaces = []space.Space{}
	}
	writeJSON(w, http.StatusOK, spaces)
}

func (a *API) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := a.spaces.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (a *API) handleCurrentSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := a.spaces.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (a *API) handleAddSpace(w http.ResponseWriter, r *http.Request) {
	var req space.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := a.spaces.Add(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sp)
}

func (a *API) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	var req space.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := a.spaces.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (a *API) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	if err := a.spaces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	// Never leave the registry empty or the selection dangling.
	if err := a.spaces.EnsureDefault(r.Context()); err != nil {
		a.logger.Error("failed to restore default space", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleSetCurrentSpace(w http.ResponseWriter, r *http.Request) {
	if err := a.spaces.SetCurrent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type resolveTagRequest struct {
	Payload string `json:"payload"`
}

func (a *API) handleResolveTag(w http.ResponseWriter, r *http.Request) {
	var req resolveTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := a.spaces.ResolveTag(r.Context(), req.Payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

type writeTagRequest struct {
	SpaceID string `json:"space_id"`
}

type writeTagResponse struct {
	Payload string `json:"payload"`
}

// handleWriteTag mints a fresh payload, writes it to a physical tag, and
// binds it to the space.
func (a *API) handleWriteTag(w http.ResponseWriter, r *http.Request) {
	var req writeTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := a.spaces.Get(r.Context(), req.SpaceID); err != nil {
		writeDomainError(w, err)
		return
	}

	payload := "TAG-" + uuid.NewString()
	if err := a.tagWriter.Write(r.Context(), payload); err != nil {
		if errors.Is(err, tagio.ErrScanInvalidated) {
			writeError(w, http.StatusRequestTimeout, "tag write cancelled")
			return
		}
		a.logger.Error("tag write failed", "error", err)
		writeError(w, http.StatusBadGateway, "tag write failed")
		return
	}

	if _, err := a.spaces.Update(r.Context(), req.SpaceID, space.UpdateRequest{TagID: &payload}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, writeTagResponse{Payload: payload})
}
