package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sakif/web-playground/internal/handler"
)

func newBasicsRouter() *chi.Mux {
	h := handler.NewBasicsHandler()

	r := chi.NewRouter()
	r.Get("/", h.HandleIndex)
	r.Get("/home", h.HandleHome)
	r.Get("/home/{name}", h.HandleHome)
	r.Get("/query", h.HandleQuery)
	r.Get("/json", h.HandleJSON)
	r.Get("/theform", h.HandleTheForm)
	r.Post("/process", h.HandleProcess)
	r.Post("/processjson", h.HandleProcessJSON)
	r.Get("/{name}", h.HandleName)
	return r
}

func TestBasics_GetRoutes(t *testing.T) {
	router := newBasicsRouter()

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"index", "/", "Hello, world!"},
		{"path param greeting", "/gopher", "Hello gopher."},
		{"home without name", "/home", "Hello, default."},
		{"home with name", "/home/gopher", "Hello, gopher."},
		{"query params echoed", "/query?name=jo&location=berlin", "Hi jo, you are from berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestBasics_StaticJSON(t *testing.T) {
	router := newBasicsRouter()

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value","key2":[1,2,3]}`, rr.Body.String())
}

func TestBasics_ProcessForm(t *testing.T) {
	router := newBasicsRouter()

	form := url.Values{"name": {"jo"}, "location": {"berlin"}}
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello jo, you are from berlin")
}

func TestBasics_ProcessJSON(t *testing.T) {
	router := newBasicsRouter()

	t.Run("echoes fields and the second list element", func(t *testing.T) {
		body := `{"name":"jo","location":"berlin","randomlist":[10,20,30]}`
		req := httptest.NewRequest(http.MethodPost, "/processjson", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t,
			`{"result":"Success!","name":"jo","location":"berlin","randomlist":20}`,
			rr.Body.String())
	})

	t.Run("invalid body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/processjson", strings.NewReader(`{"name":`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
