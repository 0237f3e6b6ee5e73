package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// newAdminRouter builds the side-channel health/stats HTTP surface. It
// carries no RESP wire semantics; INFO remains the protocol-level
// introspection command.
func newAdminRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.stats.Snapshot()
	snap.Keys = s.store.DBSize()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}
