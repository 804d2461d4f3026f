package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
	"github.com/cardfolio/cardfolio/pkg/slogx"
)

type AuthHandler struct {
	CredentialService *service.CredentialService
	SessionService    *service.SessionService
	UserService       *service.UserService
	Cookies           CookieWriter
}

// HandleLogin authenticates an email/password pair and sets the session
// cookie. Bad credentials always produce the same 401 body regardless of
// whether the account exists.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	user, ok, err := h.CredentialService.VerifyLogin(
		r.Context(),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.Password,
	)
	if err != nil {
		l.Error("login check failed")
		writeInternal(w)
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_credentials",
			"Incorrect email or password")
		return
	}

	token, _, err := h.SessionService.Issue(user.ID)
	if err != nil {
		l.Error("failed to issue session")
		writeInternal(w)
		return
	}
	h.Cookies.Set(w, token)

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleLogout clears the session cookie. Sessions are stateless, so there is
// nothing server-side to tear down; logging out of an expired session is fine.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated user's own account.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), UserID(r.Context()))
	if err != nil {
		// The session outlived the account.
		if errors.Is(err, store.ErrNotFound) {
			h.Cookies.Clear(w)
			writeUnauthorized(w)
			return
		}
		writeInternal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
