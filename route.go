package harail

import (
	"encoding/json"
	"time"

	"github.com/harail/harail/graph"
	"github.com/harail/harail/timetable"
)

// JourneyPart is a single boarded train: where it is boarded, where it is
// left, and the stops passed in between.
type JourneyPart struct {
	Train        timetable.TrainID
	Start        timetable.Stop
	End          timetable.Stop
	Intermediate []timetable.Stop
}

// MarshalJSON serializes a part in the wire format used by the HTTP layer.
func (p JourneyPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Train        timetable.TrainID   `json:"train"`
		StartStation timetable.StationID `json:"start_station"`
		StartTime    string              `json:"start_time"`
		EndStation   timetable.StationID `json:"end_station"`
		EndTime      string              `json:"end_time"`
	}{
		Train:        p.Train,
		StartStation: p.Start.Station,
		StartTime:    p.Start.Departure.UTC().Format(time.RFC3339),
		EndStation:   p.End.Station,
		EndTime:      p.End.Arrival.UTC().Format(time.RFC3339),
	})
}

// Journey is the traveler-facing result: an ordered list of train rides
// separated by implicit in-station waits. A journey with no parts means the
// traveler is already at the destination.
type Journey struct {
	Parts []JourneyPart `json:"parts"`
}

// Departure returns the boarding instant of the first train.
func (j Journey) Departure() time.Time {
	return j.Parts[0].Start.Departure
}

// Arrival returns the alighting instant of the last train.
func (j Journey) Arrival() time.Time {
	return j.Parts[len(j.Parts)-1].End.Arrival
}

// trainKey identifies a journey by the ordered trains it uses.
func (j Journey) trainKey() string {
	key := make([]byte, 0, len(j.Parts)*8)
	for _, p := range j.Parts {
		id := p.Train
		for i := 0; i < 8; i++ {
			key = append(key, byte(id>>(8*i)))
		}
	}
	return string(key)
}

// buildJourney collapses a forward edge path into journey parts. A Board
// opens a part, rides populate it and the matching Unboard closes it; Wait
// edges vanish into the gaps between parts.
func buildJourney(steps []graph.PathStep[Singularity, Action]) Journey {
	journey := Journey{Parts: []JourneyPart{}}
	var train *timetable.Train
	var start, end timetable.Stop
	var stops []timetable.Stop
	var open, rode bool
	for _, step := range steps {
		switch step.Action.Kind {
		case ActionWait:
		case ActionBoard:
			train = step.Action.Train
			open, rode = false, false
		case ActionTrainWaits:
			if !open {
				train, start, open = step.Action.Train, step.Action.From, true
			}
			end = step.Action.From
		case ActionRide:
			if !open {
				train, start, open = step.Action.Train, step.Action.From, true
			} else if rode {
				stops = append(stops, step.Action.From)
			}
			rode = true
			end = step.Action.To
		case ActionUnboard:
			if open {
				journey.Parts = append(journey.Parts, JourneyPart{
					Train:        train.ID,
					Start:        start,
					End:          end,
					Intermediate: stops,
				})
			}
			train, stops, open, rode = nil, nil, false, false
		}
	}
	return journey
}
