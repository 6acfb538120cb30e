package harail

import (
	"fmt"
	"sort"
	"time"

	"github.com/harail/harail/graph"
	"github.com/harail/harail/timetable"
)

// Mode selects the query variant.
type Mode int

const (
	// Single finds the fastest journey.
	Single Mode = iota
	// DelayedStart finds a journey that arrives like Single but leaves as
	// late as possible.
	DelayedStart
	// Multi finds one optimal journey per distinct first train.
	Multi
	// BoundedSingle is Single with a hard arrival deadline.
	BoundedSingle
	// BoundedMulti is Multi with a hard arrival deadline.
	BoundedMulti
)

// Query describes a routing request against a timetable.
type Query struct {
	Start     timetable.StationID
	End       timetable.StationID
	StartTime time.Time
	// EndTime bounds the search window; zero means one day after StartTime.
	EndTime time.Time
	Mode    Mode
}

// ListStations returns the stations of the timetable.
func ListStations(tt *timetable.Timetable) []timetable.Station {
	return tt.Stations()
}

// FindRoute builds the time-expanded graph for the query window and solves
// the requested mode. Single modes yield exactly one journey; Multi modes
// yield one per distinct first-boarded train, and an empty slice when the
// destination is unreachable before the deadline.
func FindRoute(tt *timetable.Timetable, q Query) ([]Journey, error) {
	if _, ok := tt.Station(q.Start); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStation, q.Start)
	}
	if _, ok := tt.Station(q.End); !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStation, q.End)
	}
	end := q.EndTime
	if end.IsZero() {
		end = q.StartTime.Add(24 * time.Hour)
	}
	if end.Before(q.StartTime) {
		return nil, fmt.Errorf("%w: end time %s before start time %s", ErrInvalidQuery, end, q.StartTime)
	}
	multi := q.Mode == Multi || q.Mode == BoundedMulti
	if multi && q.Start == q.End {
		return nil, fmt.Errorf("%w: multi-route search from a station to itself", ErrInvalidQuery)
	}

	rg := buildGraph(tt, q.StartTime, end)
	deadline := int64(0)
	if q.Mode == BoundedSingle || q.Mode == BoundedMulti {
		deadline = end.Unix()
	}
	sink := func(s Singularity) bool {
		if !s.platform() || s.Station != q.End {
			return false
		}
		return deadline == 0 || s.Time <= deadline
	}
	origin := Singularity{Station: q.Start, Time: q.StartTime.Unix()}

	switch q.Mode {
	case Single, BoundedSingle:
		j, ok := rg.solve(origin, sink)
		if !ok {
			return nil, ErrNoRoute
		}
		return []Journey{j}, nil
	case DelayedStart:
		j, err := delayedStart(rg, origin, sink)
		if err != nil {
			return nil, err
		}
		return []Journey{j}, nil
	case Multi, BoundedMulti:
		return multiRoutes(rg, tt, q.Start, q.StartTime, sink), nil
	}
	return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidQuery, q.Mode)
}

// solve splices the origin into its wait chain and runs the search.
func (rg *railGraph) solve(origin Singularity, sink func(Singularity) bool) (Journey, bool) {
	rg.ensure(origin)
	steps, _, ok := rg.g.FindShortestPath(origin, sink)
	if !ok {
		return Journey{}, false
	}
	return buildJourney(steps), true
}

// delayedStart first finds the fastest journey, then pushes the start
// forward one second past each found departure for as long as the optimal
// arrival is preserved, keeping the last journey that still achieves it.
func delayedStart(rg *railGraph, origin Singularity, sink func(Singularity) bool) (Journey, error) {
	best, ok := rg.solve(origin, sink)
	if !ok {
		return Journey{}, ErrNoRoute
	}
	if len(best.Parts) == 0 {
		return best, nil
	}
	arrival := best.Arrival()
	good := best
	for {
		next := Singularity{Station: origin.Station, Time: good.Departure().Unix() + 1}
		j, ok := rg.solve(next, sink)
		if !ok || len(j.Parts) == 0 || !j.Arrival().Equal(arrival) {
			return good, nil
		}
		good = j
	}
}

// firstBoarding is one train the traveler could board first at the start
// station: the boarding stop and the ride it commits to.
type firstBoarding struct {
	train *timetable.Train
	stop  timetable.Stop
	next  timetable.Stop
}

// multiRoutes enumerates the trains the traveler could board first at the
// start station and solves once per candidate. Boarding commits the
// traveler to the first ride, so the search continues from the ride's
// destination and that ride is prefixed onto the found path.
// Results are deduplicated by the ordered train sequence they use.
func multiRoutes(rg *railGraph, tt *timetable.Timetable, start timetable.StationID, startTime time.Time, sink func(Singularity) bool) []Journey {
	var candidates []firstBoarding
	for _, train := range tt.Trains() {
		for i, stop := range train.Stops {
			if stop.Station != start || i == len(train.Stops)-1 {
				continue
			}
			if stop.Departure.Before(startTime) {
				continue
			}
			candidates = append(candidates, firstBoarding{train: train, stop: stop, next: train.Stops[i+1]})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.stop.Departure.Equal(b.stop.Departure) {
			return a.stop.Departure.Before(b.stop.Departure)
		}
		return a.train.ID < b.train.ID
	})

	journeys := []Journey{}
	seen := map[string]bool{}
	for _, c := range candidates {
		ride := graph.PathStep[Singularity, Action]{
			Action: Action{Kind: ActionRide, Train: c.train, From: c.stop, To: c.next},
			To:     Singularity{Station: c.next.Station, Time: c.next.Arrival.Unix(), Train: c.train},
		}
		// the destination is absent when the ride leaves the query window
		if rg.g.Get(ride.To) == nil {
			continue
		}
		steps, _, ok := rg.g.FindShortestPath(ride.To, sink)
		if !ok {
			continue
		}
		j := buildJourney(append([]graph.PathStep[Singularity, Action]{ride}, steps...))
		if len(j.Parts) == 0 {
			continue
		}
		if key := j.trainKey(); !seen[key] {
			seen[key] = true
			journeys = append(journeys, j)
		}
	}
	return journeys
}
