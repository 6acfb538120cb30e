package timetable

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvariant reports a schedule that violates the timetable invariants,
// e.g. a stop whose departure precedes its arrival.
var ErrInvariant = errors.New("timetable invariant violated")

// StationID is the stable GTFS stop identifier of a station.
type StationID int64

// TrainID is the Israel Railways train number.
type TrainID int64

// Station is a place a train can stop at. Stations compare by ID.
type Station struct {
	ID   StationID
	Name string
}

func (s Station) String() string {
	return fmt.Sprintf("%d: %s", s.ID, s.Name)
}

// Stop is one scheduled call of a train at a station.
type Stop struct {
	Station   StationID
	Arrival   time.Time
	Departure time.Time
}

// Train is an ordered sequence of at least two stops on one service date.
type Train struct {
	ID    TrainID
	Stops []Stop
}

// First returns the initial stop.
func (t *Train) First() Stop { return t.Stops[0] }

// Last returns the final stop.
func (t *Train) Last() Stop { return t.Stops[len(t.Stops)-1] }

// validate checks the per-train invariants: at least two stops, departure
// not before arrival at each stop, and monotonic ordering between
// consecutive stops.
func (t *Train) validate() error {
	if len(t.Stops) < 2 {
		return fmt.Errorf("%w: train %d has %d stops", ErrInvariant, t.ID, len(t.Stops))
	}
	for i, stop := range t.Stops {
		if stop.Departure.Before(stop.Arrival) {
			return fmt.Errorf("%w: train %d departs station %d before arriving", ErrInvariant, t.ID, stop.Station)
		}
		if i > 0 && t.Stops[i].Arrival.Before(t.Stops[i-1].Departure) {
			return fmt.Errorf("%w: train %d stops out of order at station %d", ErrInvariant, t.ID, stop.Station)
		}
	}
	return nil
}

// Timetable is an immutable set of stations and trains.
type Timetable struct {
	stations map[StationID]Station
	trains   []*Train
	byID     map[TrainID]*Train
}

// New assembles a timetable and validates the train invariants. Trains keep
// their given order; when the same train number appears more than once (a
// trip running on several service dates) lookups by ID return the first.
func New(stations []Station, trains []*Train) (*Timetable, error) {
	tt := &Timetable{
		stations: make(map[StationID]Station, len(stations)),
		trains:   trains,
		byID:     make(map[TrainID]*Train, len(trains)),
	}
	for _, s := range stations {
		tt.stations[s.ID] = s
	}
	for _, t := range trains {
		if err := t.validate(); err != nil {
			return nil, err
		}
		for _, stop := range t.Stops {
			if _, ok := tt.stations[stop.Station]; !ok {
				return nil, fmt.Errorf("%w: train %d stops at unknown station %d", ErrInvariant, t.ID, stop.Station)
			}
		}
		if _, ok := tt.byID[t.ID]; !ok {
			tt.byID[t.ID] = t
		}
	}
	return tt, nil
}

// Station looks a station up by ID.
func (tt *Timetable) Station(id StationID) (Station, bool) {
	s, ok := tt.stations[id]
	return s, ok
}

// Train looks a train up by number.
func (tt *Timetable) Train(id TrainID) (*Train, bool) {
	t, ok := tt.byID[id]
	return t, ok
}

// Stations returns all stations sorted by ID.
func (tt *Timetable) Stations() []Station {
	out := make([]Station, 0, len(tt.stations))
	for _, s := range tt.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Trains returns all trains in load order.
func (tt *Timetable) Trains() []*Train { return tt.trains }

// FindStation returns the station with the exact given name.
func (tt *Timetable) FindStation(name string) (Station, bool) {
	for _, s := range tt.stations {
		if s.Name == name {
			return s, true
		}
	}
	return Station{}, false
}

// StartDate returns the earliest arrival instant in the timetable.
func (tt *Timetable) StartDate() (time.Time, bool) {
	var min time.Time
	for _, t := range tt.trains {
		if min.IsZero() || t.First().Arrival.Before(min) {
			min = t.First().Arrival
		}
	}
	return min, !min.IsZero()
}

// EndDate returns the latest departure instant in the timetable.
func (tt *Timetable) EndDate() (time.Time, bool) {
	var max time.Time
	for _, t := range tt.trains {
		if t.Last().Departure.After(max) {
			max = t.Last().Departure
		}
	}
	return max, !max.IsZero()
}
