package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cardfolio/cardfolio/internal/api/service"
	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/cardfolio/cardfolio/pkg/httpx"
	"github.com/cardfolio/cardfolio/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
	SessionService   *service.SessionService
	Cookies          CookieWriter
}

// HandleStatus reports whether first-run setup is still open. The frontend
// polls this to decide between the setup screen and the login screen.
func (h *BootstrapHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	bootstrapped, err := h.BootstrapService.IsBootstrapped(r.Context())
	if err != nil {
		writeInternal(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, api.BootstrapStatusResponse{Bootstrapped: bootstrapped})
}

// HandleCreate creates the first account and logs it straight in.
func (h *BootstrapHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req api.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	user, err := h.BootstrapService.Bootstrap(
		r.Context(),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, service.ErrBootstrapAlready) {
			writeError(w, http.StatusConflict, "already_bootstrapped",
				"An account already exists")
			return
		}
		writeInternal(w)
		return
	}

	token, _, err := h.SessionService.Issue(user.ID)
	if err != nil {
		l.Error("failed to issue session after bootstrap")
		writeInternal(w)
		return
	}
	h.Cookies.Set(w, token)

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}
