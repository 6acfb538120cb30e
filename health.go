package harail

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Trains   int    `json:"trains"`
	DataFrom string `json:"data_from,omitempty"`
	DataTo   string `json:"data_to,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Stations: len(s.tt.Stations()),
		Trains:   len(s.tt.Trains()),
	}
	if from, ok := s.tt.StartDate(); ok {
		resp.DataFrom = from.UTC().Format(time.RFC3339)
	}
	if to, ok := s.tt.EndDate(); ok {
		resp.DataTo = to.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}
