package harail

import (
	"errors"

	"github.com/harail/harail/timetable"
)

var (
	// ErrNoRoute means no path to the destination exists in the graph.
	ErrNoRoute = errors.New("no route")
	// ErrUnknownStation means a station id is not present in the timetable.
	ErrUnknownStation = errors.New("unknown station")
	// ErrInvalidQuery means the query parameters are inconsistent.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrTimetableInvariant is raised when the schedule itself is broken.
	ErrTimetableInvariant = timetable.ErrInvariant
)
