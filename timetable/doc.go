// Package timetable holds the static Israel Railways schedule: stations,
// trains and their stops, loaded from a GTFS feed or from a previously
// parsed SQLite database.
package timetable
