package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// BasicsHandler is the HTTP-basics playground: a handful of stateless echo
// routes exercising path params, query params, forms, and JSON bodies. No
// database, no sessions, no services — it exists to poke at the router.
type BasicsHandler struct{}

// NewBasicsHandler creates a BasicsHandler.
func NewBasicsHandler() *BasicsHandler {
	return &BasicsHandler{}
}

func writeHTML(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, markup)
}

// HandleIndex greets the world.
//
// HTTP: GET /
func (h *BasicsHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, "<h1>Hello, world!</h1>")
}

// HandleName greets whoever is in the path.
//
// HTTP: GET /{name}
func (h *BasicsHandler) HandleName(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, fmt.Sprintf("<h1>Hello %s.</h1>", chi.URLParam(r, "name")))
}

// HandleHome greets with an optional name, defaulting when absent.
//
// HTTP: GET /home and GET /home/{name}
func (h *BasicsHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		name = "default"
	}
	writeHTML(w, fmt.Sprintf("<h1>Hello, %s. You are on the home page!</h1>", name))
}

// HandleQuery echoes two query parameters.
//
// HTTP: GET /query?name=...&location=...
func (h *BasicsHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	location := r.URL.Query().Get("location")
	writeHTML(w, fmt.Sprintf("<h1>Hi %s, you are from %s. You are on the query page</h1>", name, location))
}

// HandleJSON returns a static JSON document.
//
// HTTP: GET /json
func (h *BasicsHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"key":  "value",
		"key2": []int{1, 2, 3},
	})
}

// HandleTheForm serves a bare form posting to /process.
//
// HTTP: GET /theform
func (h *BasicsHandler) HandleTheForm(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, `<form method="POST" action="/process">
	<input type="text" name="name">
	<input type="text" name="location">
	<input type="submit" value="Submit">
</form>`)
}

// HandleProcess echoes the posted form values.
//
// HTTP: POST /process
func (h *BasicsHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	location := r.FormValue("location")
	writeHTML(w, fmt.Sprintf("<h1>Hello %s, you are from %s. Form submitted successfully!</h1>", name, location))
}

// HandleProcessJSON echoes fields from a JSON body, plus the second element
// of its list.
//
// HTTP: POST /processjson, body {"name": ..., "location": ..., "randomlist": [...]}
func (h *BasicsHandler) HandleProcessJSON(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string `json:"name"`
		Location   string `json:"location"`
		RandomList []any  `json:"randomlist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	var second any
	if len(body.RandomList) > 1 {
		second = body.RandomList[1]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":     "Success!",
		"name":       body.Name,
		"location":   body.Location,
		"randomlist": second,
	})
}
