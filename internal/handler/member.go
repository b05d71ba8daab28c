package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/web-playground/internal/apperror"
	"github.com/sakif/web-playground/internal/service"
)

// MemberHandler serves the member REST API — JSON in, JSON out.
type MemberHandler struct {
	members *service.MemberService
	logger  *slog.Logger
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(members *service.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

// BasicAuth guards the member API with a single fixed credential pair.
//
// There are no per-user API accounts and no stored hash — just one
// username/password configured at startup. The comparison is constant-time
// (subtle.ConstantTimeCompare) so response timing doesn't leak how much of a
// guess matched. A mismatch is a 403 JSON error, not a 401 challenge.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(u), []byte(username)) != 1 ||
				subtle.ConstantTimeCompare([]byte(p), []byte(password)) != 1 {
				writeError(w, apperror.AuthenticationFailed())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// memberRequest is the JSON body for create and update.
type memberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Level string `json:"level"`
}

// HandleList returns every member.
//
// HTTP: GET /member
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		h.logger.Error("listing members", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

// HandleGet returns one member.
//
// HTTP: GET /member/{id}
func (h *MemberHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := h.members.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"member": member})
}

// HandleCreate adds a member.
//
// HTTP: POST /member, body {"name": ..., "email": ..., "level": ...}
func (h *MemberHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	member, err := h.members.Create(r.Context(), req.Name, req.Email, req.Level)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"member": member})
}

// HandleUpdate modifies a member. Empty fields are left unchanged, so PUT
// and PATCH share this handler.
//
// HTTP: PUT/PATCH /member/{id}
func (h *MemberHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	member, err := h.members.Update(r.Context(), id, req.Name, req.Email, req.Level)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"member": member})
}

// HandleDelete removes a member.
//
// HTTP: DELETE /member/{id}
func (h *MemberHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.members.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
