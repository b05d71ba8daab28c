package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sakif/web-playground/internal/handler"
	"github.com/sakif/web-playground/internal/model"
	"github.com/sakif/web-playground/internal/repository/sqlite"
	"github.com/sakif/web-playground/internal/service"
)

const (
	apiUser = "api"
	apiPass = "hunter2"
)

// newMemberRouter builds the member API the way the server does: every route
// behind Basic auth, backed by an in-memory database.
func newMemberRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db, err := sqlite.NewMembers(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := handler.NewMemberHandler(service.NewMemberService(db.Members(), logger), logger)

	r := chi.NewRouter()
	r.Use(handler.BasicAuth(apiUser, apiPass))
	r.Route("/member", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}

// apiRequest issues an authenticated JSON request against the router.
func apiRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.SetBasicAuth(apiUser, apiPass)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestBasicAuth(t *testing.T) {
	router := newMemberRouter(t)

	tests := []struct {
		name     string
		username string
		password string
		withAuth bool
	}{
		{"missing credentials", "", "", false},
		{"wrong password", apiUser, "wrong", true},
		{"wrong username", "intruder", apiPass, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/member", nil)
			if tt.withAuth {
				req.SetBasicAuth(tt.username, tt.password)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusForbidden, rr.Code)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "authentication_failed", body["error"])
			assert.Equal(t, "Authentication failed!", body["message"])
		})
	}
}

func TestMemberAPI_CRUD(t *testing.T) {
	router := newMemberRouter(t)

	// CREATE
	rr := apiRequest(t, router, http.MethodPost, "/member",
		`{"name":"john","email":"john@example.com","level":"gold"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		Member model.Member `json:"member"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.NotZero(t, created.Member.ID)
	assert.Equal(t, "john", created.Member.Name)

	// READ one
	rr = apiRequest(t, router, http.MethodGet, "/member/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	// READ all
	rr = apiRequest(t, router, http.MethodGet, "/member", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Members []model.Member `json:"members"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Len(t, list.Members, 1)

	// PATCH — empty fields untouched
	rr = apiRequest(t, router, http.MethodPatch, "/member/1", `{"level":"platinum"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	var patched struct {
		Member model.Member `json:"member"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&patched))
	assert.Equal(t, "platinum", patched.Member.Level)
	assert.Equal(t, "john", patched.Member.Name)

	// DELETE
	rr = apiRequest(t, router, http.MethodDelete, "/member/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Gone afterwards.
	rr = apiRequest(t, router, http.MethodGet, "/member/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMemberAPI_Errors(t *testing.T) {
	router := newMemberRouter(t)

	t.Run("malformed id", func(t *testing.T) {
		rr := apiRequest(t, router, http.MethodGet, "/member/banana", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rr := apiRequest(t, router, http.MethodGet, "/member/404", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		rr := apiRequest(t, router, http.MethodPost, "/member", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := apiRequest(t, router, http.MethodPost, "/member", `{"email":"x@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "validation_error", body["error"])
	})
}
