package harail

import (
	"fmt"
	"testing"
	"time"

	"github.com/harail/harail/timetable"
)

// ts returns an instant on the fixed test date.
func ts(h, m int) time.Time {
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC)
}

type stopSpec struct {
	station  timetable.StationID
	arr, dep time.Time
}

// at is a stop without dwell time.
func at(station timetable.StationID, when time.Time) stopSpec {
	return stopSpec{station: station, arr: when, dep: when}
}

// dwell is a stop where the train waits between arrival and departure.
func dwell(station timetable.StationID, arr, dep time.Time) stopSpec {
	return stopSpec{station: station, arr: arr, dep: dep}
}

func newTrain(id timetable.TrainID, stops ...stopSpec) *timetable.Train {
	t := &timetable.Train{ID: id}
	for _, s := range stops {
		t.Stops = append(t.Stops, timetable.Stop{Station: s.station, Arrival: s.arr, Departure: s.dep})
	}
	return t
}

// newTimetable assembles a timetable, deriving the station list from the
// trains' stops.
func newTimetable(t *testing.T, trains ...*timetable.Train) *timetable.Timetable {
	t.Helper()
	seen := map[timetable.StationID]bool{}
	var stations []timetable.Station
	for _, train := range trains {
		for _, stop := range train.Stops {
			if !seen[stop.Station] {
				seen[stop.Station] = true
				stations = append(stations, timetable.Station{
					ID:   stop.Station,
					Name: fmt.Sprintf("station %d", stop.Station),
				})
			}
		}
	}
	tt, err := timetable.New(stations, trains)
	if err != nil {
		t.Fatalf("timetable.New: %v", err)
	}
	return tt
}

// singleJourney runs FindRoute and requires exactly one journey.
func singleJourney(t *testing.T, tt *timetable.Timetable, q Query) Journey {
	t.Helper()
	journeys, err := FindRoute(tt, q)
	if err != nil {
		t.Fatalf("FindRoute: %v", err)
	}
	if len(journeys) != 1 {
		t.Fatalf("expected one journey, got %d", len(journeys))
	}
	return journeys[0]
}

// wantPart checks one journey part against the expected ride.
func wantPart(t *testing.T, p JourneyPart, train timetable.TrainID, from timetable.StationID, dep time.Time, to timetable.StationID, arr time.Time) {
	t.Helper()
	if p.Train != train {
		t.Errorf("part train = %d, want %d", p.Train, train)
	}
	if p.Start.Station != from || !p.Start.Departure.Equal(dep) {
		t.Errorf("part boards %d at %v, want %d at %v", p.Start.Station, p.Start.Departure, from, dep)
	}
	if p.End.Station != to || !p.End.Arrival.Equal(arr) {
		t.Errorf("part alights %d at %v, want %d at %v", p.End.Station, p.End.Arrival, to, arr)
	}
}
