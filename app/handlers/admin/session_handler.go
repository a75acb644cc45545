package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
	"github.com/Rakhulsr/clothing-catalog-admin/app/services"
	"github.com/gorilla/csrf"
)

type SessionForm struct {
	Key string `json:"key"`
}

type SessionState struct {
	Authenticated bool       `json:"authenticated"`
	Role          string     `json:"role,omitempty"`
	OpenedAt      *time.Time `json:"openedAt,omitempty"`
	CSRFToken     string     `json:"csrfToken,omitempty"`
}

func (h *AdminHandler) sessionState(r *http.Request) *SessionState {
	state := &SessionState{
		Authenticated: h.sessions.IsAdmin(r),
		Role:          h.sessions.GetRole(r),
		CSRFToken:     csrf.Token(r),
	}
	if opened := h.sessions.OpenedAt(r); !opened.IsZero() {
		state.OpenedAt = &opened
	}
	return state
}

func (h *AdminHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respond(h.render, w, http.StatusOK, services.Result[*SessionState]{
		Success: true,
		Message: "Session fetched successfully.",
		Data:    h.sessionState(r),
	})
}

func (h *AdminHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	var form SessionForm
	if err == nil {
		err = json.Unmarshal(body, &form)
	}
	if err != nil {
		h.badRequest(w, "Malformed JSON body")
		return
	}

	if h.adminKeyHash == "" || form.Key == "" || !helpers.PasswordCompare(h.adminKeyHash, []byte(form.Key)) {
		respond(h.render, w, http.StatusUnauthorized, services.Failure[any](services.ErrorUnauthorized, "Invalid admin key."))
		return
	}

	if err := h.sessions.SetAdmin(w, r); err != nil {
		log.Printf("OpenSession: failed to save session: %v", err)
		respond(h.render, w, http.StatusInternalServerError, services.Failure[any](services.ErrorInternal, "Unexpected error occurred"))
		return
	}
	respond(h.render, w, http.StatusOK, services.Result[any]{Success: true, Message: "Admin session opened."})
}

func (h *AdminHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(w, r); err != nil {
		log.Printf("CloseSession: failed to clear session: %v", err)
		respond(h.render, w, http.StatusInternalServerError, services.Failure[any](services.ErrorInternal, "Unexpected error occurred"))
		return
	}
	respond(h.render, w, http.StatusOK, services.Result[any]{Success: true, Message: "Admin session closed."})
}
