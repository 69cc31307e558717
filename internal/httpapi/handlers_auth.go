package httpapi

import (
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ident, err := a.identities.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := a.tokens.Issue(*ident)
	if err != nil {
		a.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: ident.Username,
		Role:     string(ident.Role),
	})
}

// Logout is a client-side token discard; the server holds no login state.
// The endpoint exists so the presentation layer has an explicit call.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	if err := a.gateway.RequestAuthorization(r.Context()); err != nil {
		a.logger.Error("authorization request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authorized": a.gateway.Authorized()})
}
