package harail

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harail/harail/timetable"
)

type stationPayload struct {
	ID   timetable.StationID `json:"id"`
	Name string              `json:"name"`
}

func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	stations := ListStations(s.tt)
	out := make([]stationPayload, 0, len(stations))
	for _, st := range stations {
		out = append(out, stationPayload{ID: st.ID, Name: st.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

type stopPayload struct {
	Station   timetable.StationID `json:"station"`
	Arrival   string              `json:"arrival"`
	Departure string              `json:"departure"`
}

func (s *Server) handleTrainStops(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "train id must be an integer")
		return
	}
	train, ok := s.tt.Train(timetable.TrainID(id))
	if !ok {
		writeError(w, http.StatusNotFound, "no such train")
		return
	}
	out := make([]stopPayload, 0, len(train.Stops))
	for _, stop := range train.Stops {
		out = append(out, stopPayload{
			Station:   stop.Station,
			Arrival:   stop.Arrival.UTC().Format(time.RFC3339),
			Departure: stop.Departure.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFindRoute(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	q, err := parseFindQuery(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	search := params["search"]
	started := time.Now()
	journeys, err := FindRoute(s.tt, q)
	elapsed := time.Since(started)
	switch {
	case err == nil:
		s.metrics.ObserveQuery(search, "ok", elapsed)
	case errors.Is(err, ErrNoRoute):
		s.metrics.ObserveQuery(search, "no_route", elapsed)
		writeError(w, http.StatusNotFound, "no possible route found")
		return
	case errors.Is(err, ErrUnknownStation):
		s.metrics.ObserveQuery(search, "bad_request", elapsed)
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, ErrInvalidQuery):
		s.metrics.ObserveQuery(search, "bad_request", elapsed)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	default:
		s.metrics.ObserveQuery(search, "error", elapsed)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if q.Mode == Multi || q.Mode == BoundedMulti {
		writeJSON(w, http.StatusOK, journeys)
		return
	}
	writeJSON(w, http.StatusOK, journeys[0])
}
