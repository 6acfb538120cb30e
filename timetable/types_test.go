package timetable

import (
	"errors"
	"testing"
	"time"
)

func tstamp(h, m int) time.Time {
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC)
}

func testStations() []Station {
	return []Station{
		{ID: 100, Name: "stat_a"},
		{ID: 200, Name: "stat_b"},
		{ID: 300, Name: "stat_c"},
	}
}

func TestNewValidTimetable(t *testing.T) {
	tt, err := New(testStations(), []*Train{
		{ID: 1, Stops: []Stop{
			{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
			{Station: 200, Arrival: tstamp(9, 30), Departure: tstamp(9, 35)},
			{Station: 300, Arrival: tstamp(10, 0), Departure: tstamp(10, 0)},
		}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tt.Train(1); !ok {
		t.Error("train 1 not found")
	}
	if s, ok := tt.Station(200); !ok || s.Name != "stat_b" {
		t.Errorf("station 200 = %v, %v", s, ok)
	}
	if s, ok := tt.FindStation("stat_c"); !ok || s.ID != 300 {
		t.Errorf("FindStation(stat_c) = %v, %v", s, ok)
	}
	if _, ok := tt.FindStation("nowhere"); ok {
		t.Error("FindStation matched a non-existent name")
	}
}

func TestNewRejectsInvalidTrains(t *testing.T) {
	tests := []struct {
		name  string
		stops []Stop
	}{
		{
			name: "single stop",
			stops: []Stop{
				{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
			},
		},
		{
			name: "departure before arrival",
			stops: []Stop{
				{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(8, 50)},
				{Station: 200, Arrival: tstamp(9, 30), Departure: tstamp(9, 30)},
			},
		},
		{
			name: "stops out of order",
			stops: []Stop{
				{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
				{Station: 200, Arrival: tstamp(8, 30), Departure: tstamp(8, 30)},
			},
		},
		{
			name: "unknown station",
			stops: []Stop{
				{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
				{Station: 999, Arrival: tstamp(9, 30), Departure: tstamp(9, 30)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testStations(), []*Train{{ID: 1, Stops: tt.stops}})
			if !errors.Is(err, ErrInvariant) {
				t.Errorf("expected ErrInvariant, got %v", err)
			}
		})
	}
}

func TestStationsSortedByID(t *testing.T) {
	tt, err := New(testStations(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stations := tt.Stations()
	for i := 1; i < len(stations); i++ {
		if stations[i-1].ID >= stations[i].ID {
			t.Fatalf("stations not sorted: %v", stations)
		}
	}
}

func TestStartAndEndDate(t *testing.T) {
	tt, err := New(testStations(), []*Train{
		{ID: 1, Stops: []Stop{
			{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
			{Station: 200, Arrival: tstamp(9, 30), Departure: tstamp(9, 30)},
		}},
		{ID: 2, Stops: []Stop{
			{Station: 200, Arrival: tstamp(7, 0), Departure: tstamp(7, 0)},
			{Station: 300, Arrival: tstamp(11, 0), Departure: tstamp(11, 0)},
		}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	from, ok := tt.StartDate()
	if !ok || !from.Equal(tstamp(7, 0)) {
		t.Errorf("StartDate = %v, %v", from, ok)
	}
	to, ok := tt.EndDate()
	if !ok || !to.Equal(tstamp(11, 0)) {
		t.Errorf("EndDate = %v, %v", to, ok)
	}

	empty, _ := New(nil, nil)
	if _, ok := empty.StartDate(); ok {
		t.Error("empty timetable reported a start date")
	}
}

func TestDuplicateTrainNumberKeepsFirst(t *testing.T) {
	day1 := []Stop{
		{Station: 100, Arrival: tstamp(9, 0), Departure: tstamp(9, 0)},
		{Station: 200, Arrival: tstamp(9, 30), Departure: tstamp(9, 30)},
	}
	day2 := []Stop{
		{Station: 100, Arrival: tstamp(9, 0).AddDate(0, 0, 1), Departure: tstamp(9, 0).AddDate(0, 0, 1)},
		{Station: 200, Arrival: tstamp(9, 30).AddDate(0, 0, 1), Departure: tstamp(9, 30).AddDate(0, 0, 1)},
	}
	tt, err := New(testStations(), []*Train{{ID: 7, Stops: day1}, {ID: 7, Stops: day2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(tt.Trains()) != 2 {
		t.Fatalf("trains = %d, want 2", len(tt.Trains()))
	}
	got, _ := tt.Train(7)
	if !got.First().Arrival.Equal(tstamp(9, 0)) {
		t.Error("Train(7) did not return the first-loaded instance")
	}
}
