package harail

import (
	"github.com/harail/harail/timetable"
)

// Singularity is a point in the time-expanded graph: a station at an
// instant, either on the platform (Train == nil) or aboard a specific
// train. Instants are unix seconds so singularities stay comparable.
type Singularity struct {
	Station timetable.StationID
	Time    int64
	Train   *timetable.Train
}

// platform reports whether the traveler is not committed to a train here.
func (s Singularity) platform() bool { return s.Train == nil }

// ActionKind tags the traveler action an edge represents.
type ActionKind int

const (
	// ActionWait moves forward in time on the platform of one station.
	ActionWait ActionKind = iota
	// ActionTrainWaits is the onboard wait between arrival and departure
	// at one stop.
	ActionTrainWaits
	// ActionRide moves between two consecutive stops of one train.
	ActionRide
	// ActionBoard crosses from the platform onto a train at one instant.
	ActionBoard
	// ActionUnboard crosses from a train back onto the platform.
	ActionUnboard
)

// Action is the payload of a graph edge.
type Action struct {
	Kind     ActionKind
	Duration int64            // Wait only, seconds
	Train    *timetable.Train // TrainWaits, Ride, Board
	From     timetable.Stop   // TrainWaits: the stop; Ride: origin stop
	To       timetable.Stop   // Ride: destination stop
}

// Weight returns the temporal cost of the action in seconds. Board and
// Unboard bridges are free; equal-cost paths are separated by TieWeight.
func (a Action) Weight() int64 {
	switch a.Kind {
	case ActionWait:
		return a.Duration
	case ActionTrainWaits:
		return a.From.Departure.Unix() - a.From.Arrival.Unix()
	case ActionRide:
		return a.To.Arrival.Unix() - a.From.Departure.Unix()
	default:
		return 0
	}
}

// TieWeight counts train boardings, so that among equally fast paths the
// one with the fewest train changes wins.
func (a Action) TieWeight() int64 {
	if a.Kind == ActionBoard {
		return 1
	}
	return 0
}
