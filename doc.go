// Package harail computes fastest Israel Railways itineraries over a
// static timetable. The timetable is projected onto a time-expanded graph
// whose nodes are (station, instant, train) singularities and whose edges
// are traveler actions; shortest paths over that graph become journeys.
package harail
