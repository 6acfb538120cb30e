package harail

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/harail/harail/timetable"
)

// QueryError reports a malformed find-route request.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// findRequest carries the raw find-route parameters before they become a
// Query.
type findRequest struct {
	Search       string `validate:"required,oneof=best latest multi bounded bounded-multi"`
	StartStation int64  `validate:"required"`
	StartTime    string `validate:"required"`
	EndStation   int64  `validate:"required"`
	EndTime      string `validate:"required"`
}

var validate = validator.New()

// parseFindQuery turns HTTP query parameters into a routing query. Instants
// are RFC3339; search is one of best, latest, multi, bounded or
// bounded-multi. Bounded searches treat end_time as a hard arrival
// deadline instead of a plain window bound.
func parseFindQuery(params map[string]string) (Query, error) {
	req := findRequest{
		Search:    strings.ToLower(strings.TrimSpace(params["search"])),
		StartTime: params["start_time"],
		EndTime:   params["end_time"],
	}
	var err error
	if req.StartStation, err = parseStationID(params["start_station"]); err != nil {
		return Query{}, err
	}
	if req.EndStation, err = parseStationID(params["end_station"]); err != nil {
		return Query{}, err
	}
	if err := validate.Struct(req); err != nil {
		return Query{}, &QueryError{Msg: "missing or invalid parameters: " + err.Error()}
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return Query{}, &QueryError{Msg: "cannot parse start_time: " + req.StartTime}
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return Query{}, &QueryError{Msg: "cannot parse end_time: " + req.EndTime}
	}

	q := Query{
		Start:     timetable.StationID(req.StartStation),
		End:       timetable.StationID(req.EndStation),
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}
	switch req.Search {
	case "best":
		q.Mode = Single
	case "latest":
		q.Mode = DelayedStart
	case "multi":
		q.Mode = Multi
	case "bounded":
		q.Mode = BoundedSingle
	case "bounded-multi":
		q.Mode = BoundedMulti
	}
	return q, nil
}

func parseStationID(s string) (int64, error) {
	if s == "" {
		return 0, &QueryError{Msg: "station parameter is required"}
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &QueryError{Msg: "station id must be an integer: " + s}
	}
	return v, nil
}
