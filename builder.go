package harail

import (
	"sort"
	"time"

	"github.com/harail/harail/graph"
	"github.com/harail/harail/timetable"
)

// railGraph is the time-expanded graph for one query window, plus the
// per-station platform singularities needed to splice origins in later.
type railGraph struct {
	g *graph.Graph[Singularity, Action]
	// platform singularity times per station, sorted ascending
	platforms map[timetable.StationID][]int64
}

// buildGraph projects the timetable onto the time-expanded graph. Stops
// whose arrival falls after end or whose departure falls before start are
// left out.
func buildGraph(tt *timetable.Timetable, start, end time.Time) *railGraph {
	rg := &railGraph{
		g:         graph.New[Singularity, Action](),
		platforms: map[timetable.StationID][]int64{},
	}
	platformSets := map[timetable.StationID]map[int64]bool{}
	platform := func(station timetable.StationID, at int64) Singularity {
		s := Singularity{Station: station, Time: at}
		rg.g.GetOrInsert(s)
		if platformSets[station] == nil {
			platformSets[station] = map[int64]bool{}
		}
		platformSets[station][at] = true
		return s
	}

	for _, train := range tt.Trains() {
		var prev *Singularity
		var prevStop timetable.Stop
		for _, stop := range train.Stops {
			if stop.Arrival.After(end) || stop.Departure.Before(start) {
				prev = nil
				continue
			}
			arrival := Singularity{Station: stop.Station, Time: stop.Arrival.Unix(), Train: train}
			rg.g.GetOrInsert(arrival)
			arrivalPlatform := platform(stop.Station, arrival.Time)

			// bridge the platform at the arrival instant both ways:
			// unboarding is possible as soon as the train arrives
			rg.g.Connect(arrival, Action{Kind: ActionUnboard}, arrivalPlatform)
			rg.g.Connect(arrivalPlatform, Action{Kind: ActionBoard, Train: train}, arrival)

			if prev != nil {
				rg.g.Connect(*prev, Action{Kind: ActionRide, Train: train, From: prevStop, To: stop}, arrival)
			}

			departure := arrival
			if !stop.Departure.Equal(stop.Arrival) {
				departure = Singularity{Station: stop.Station, Time: stop.Departure.Unix(), Train: train}
				rg.g.GetOrInsert(departure)
				rg.g.Connect(arrival, Action{Kind: ActionTrainWaits, Train: train, From: stop}, departure)

				departurePlatform := platform(stop.Station, departure.Time)
				rg.g.Connect(departurePlatform, Action{Kind: ActionBoard, Train: train}, departure)
				rg.g.Connect(departure, Action{Kind: ActionUnboard}, departurePlatform)
			}

			prev = &departure
			prevStop = stop
		}
	}

	// chain each station's platform singularities with wait edges
	for station, set := range platformSets {
		times := make([]int64, 0, len(set))
		for at := range set {
			times = append(times, at)
		}
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		for i := 1; i < len(times); i++ {
			rg.g.Connect(
				Singularity{Station: station, Time: times[i-1]},
				Action{Kind: ActionWait, Duration: times[i] - times[i-1]},
				Singularity{Station: station, Time: times[i]},
			)
		}
		rg.platforms[station] = times
	}
	return rg
}

// ensure splices a platform singularity into its station's wait chain if it
// is not already on it: the nearest earlier and later singularities are
// rewired through the new one, replacing their direct wait edge.
func (rg *railGraph) ensure(s Singularity) {
	if rg.g.Get(s) != nil {
		return
	}
	rg.g.GetOrInsert(s)
	times := rg.platforms[s.Station]
	i := sort.Search(len(times), func(i int) bool { return times[i] >= s.Time })
	if i > 0 {
		prev := Singularity{Station: s.Station, Time: times[i-1]}
		if i < len(times) {
			next := Singularity{Station: s.Station, Time: times[i]}
			rg.g.Get(prev).Disconnect(func(e graph.Edge[Singularity, Action]) bool {
				return e.Action.Kind == ActionWait && e.To == next
			})
		}
		rg.g.Connect(prev, Action{Kind: ActionWait, Duration: s.Time - prev.Time}, s)
	}
	if i < len(times) {
		next := Singularity{Station: s.Station, Time: times[i]}
		rg.g.Connect(s, Action{Kind: ActionWait, Duration: next.Time - s.Time}, next)
	}
	times = append(times, 0)
	copy(times[i+1:], times[i:])
	times[i] = s.Time
	rg.platforms[s.Station] = times
}
