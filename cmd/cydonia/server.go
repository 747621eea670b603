package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gitlab.com/lologarithm/cydonia/dashboard"
	"gitlab.com/lologarithm/cydonia/reading"
)

var pageTmpl = template.Must(template.New("page").Parse(page))

type server struct {
	ctx  context.Context
	ctrl *dashboard.Controller
	hub  *hub
}

func newServer(ctx context.Context, ctrl *dashboard.Controller) *server {
	return &server{
		ctx:  ctx,
		ctrl: ctrl,
		hub:  newHub(ctx, ctrl),
	}
}

// routes builds the http handler, access logged to stdout.
func (srv *server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", srv.index).Methods("GET")
	r.HandleFunc("/stream", srv.hub.clientStreamHandler).Methods("GET")
	r.HandleFunc("/view", srv.view).Methods("GET")
	r.HandleFunc("/locations", srv.locations).Methods("GET")
	r.HandleFunc("/location/{id}", srv.setLocation).Methods("POST")
	r.HandleFunc("/health", health).Methods("GET")
	return handlers.LoggingHandler(os.Stdout, r)
}

func (srv *server) index(w http.ResponseWriter, r *http.Request) {
	c := srv.ctrl.Catalog()
	data := struct {
		Locations interface{}
	}{c.Locations}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		log.Printf("[Error] Failed to render page: %s", err)
	}
}

func (srv *server) view(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, srv.ctrl.View())
}

func (srv *server) locations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, srv.ctrl.Catalog().Locations)
}

func (srv *server) setLocation(w http.ResponseWriter, r *http.Request) {
	id := reading.ID(mux.Vars(r)["id"])
	if _, ok := srv.ctrl.Catalog().Location(id); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown location"})
		return
	}
	srv.ctrl.SetLocation(srv.ctx, id)
	writeJSON(w, http.StatusAccepted, srv.ctrl.View())
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Error] Failed to write json: %s", err)
	}
}
