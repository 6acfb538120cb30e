package timetable

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// irwAgencyName is the agency_name of Israel Railways in the national GTFS
// feed; everything not operated by it is filtered out.
const irwAgencyName = "רכבת ישראל"

// FromGTFSZip loads a timetable from a GTFS zip file, keeping trains that
// run between start and end.
func FromGTFSZip(path string, start, end time.Time) (*Timetable, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return FromGTFS(zr, start, end)
}

// FromGTFSDirectory loads a timetable from an extracted GTFS directory.
func FromGTFSDirectory(path string, start, end time.Time) (*Timetable, error) {
	return FromGTFS(os.DirFS(path), start, end)
}

// FromGTFS loads a timetable from any filesystem holding the GTFS text
// files. Services are expanded per calendar day over [start, end): a trip
// active on several dates in the window yields one train per date, all
// carrying the same train number.
func FromGTFS(fsys fs.FS, start, end time.Time) (*Timetable, error) {
	agencyID, err := parseAgency(fsys)
	if err != nil {
		return nil, err
	}
	routes, err := parseRoutes(fsys, agencyID)
	if err != nil {
		return nil, err
	}
	services, err := parseCalendar(fsys)
	if err != nil {
		return nil, err
	}
	trips, err := parseTrips(fsys, routes)
	if err != nil {
		return nil, err
	}
	stopTimes, err := parseStopTimes(fsys)
	if err != nil {
		return nil, err
	}

	var trains []*Train
	used := map[StationID]bool{}
	for date := dateOf(start); date.Before(dateOf(end)); date = date.AddDate(0, 0, 1) {
		for _, trip := range trips {
			svc, ok := services[trip.service]
			if !ok || !svc.activeOn(date) {
				continue
			}
			rows := stopTimes[trip.id]
			if len(rows) == 0 {
				continue
			}
			train, err := assembleTrain(trip.id, rows, date)
			if err != nil {
				return nil, err
			}
			for _, s := range train.Stops {
				used[s.Station] = true
			}
			trains = append(trains, train)
		}
	}

	stations, err := parseStops(fsys, used)
	if err != nil {
		return nil, err
	}
	return New(stations, trains)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// readCSV reads one GTFS file and returns its records plus a header lookup.
func readCSV(fsys fs.FS, name string) ([][]string, func(string) int, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	rec, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(rec) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", name)
	}
	head := rec[0]
	// BOM on the first header cell is common in GTFS exports
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	return rec[1:], idx, nil
}

func parseAgency(fsys fs.FS) (string, error) {
	rows, idx, err := readCSV(fsys, "agency.txt")
	if err != nil {
		return "", err
	}
	id, name := idx("agency_id"), idx("agency_name")
	if id < 0 || name < 0 {
		return "", fmt.Errorf("agency.txt: missing agency_id or agency_name header")
	}
	for _, row := range rows {
		if row[name] == irwAgencyName {
			return row[id], nil
		}
	}
	return "", fmt.Errorf("agency.txt: %s not found", irwAgencyName)
}

func parseRoutes(fsys fs.FS, agencyID string) (map[string]bool, error) {
	rows, idx, err := readCSV(fsys, "routes.txt")
	if err != nil {
		return nil, err
	}
	rID, aID := idx("route_id"), idx("agency_id")
	if rID < 0 || aID < 0 {
		return nil, fmt.Errorf("routes.txt: missing route_id or agency_id header")
	}
	routes := map[string]bool{}
	for _, row := range rows {
		if row[aID] == agencyID {
			routes[row[rID]] = true
		}
	}
	return routes, nil
}

// service is one calendar.txt row: a weekday bitmap and a validity range.
type service struct {
	days       [7]bool // indexed by time.Weekday
	start, end time.Time
}

func (s service) activeOn(date time.Time) bool {
	// end date is inclusive
	return s.days[date.Weekday()] && !date.Before(s.start) && !date.After(s.end)
}

func parseCalendar(fsys fs.FS) (map[string]service, error) {
	rows, idx, err := readCSV(fsys, "calendar.txt")
	if err != nil {
		return nil, err
	}
	sID := idx("service_id")
	startCol, endCol := idx("start_date"), idx("end_date")
	dayCols := [7]int{
		idx("sunday"), idx("monday"), idx("tuesday"), idx("wednesday"),
		idx("thursday"), idx("friday"), idx("saturday"),
	}
	if sID < 0 || startCol < 0 || endCol < 0 {
		return nil, fmt.Errorf("calendar.txt: missing headers")
	}
	for _, c := range dayCols {
		if c < 0 {
			return nil, fmt.Errorf("calendar.txt: missing weekday header")
		}
	}
	services := map[string]service{}
	for _, row := range rows {
		var svc service
		for wd, c := range dayCols {
			svc.days[wd] = row[c] != "0" && row[c] != ""
		}
		svc.start, err = time.Parse("20060102", row[startCol])
		if err != nil {
			return nil, fmt.Errorf("calendar.txt: bad start_date %q", row[startCol])
		}
		svc.end, err = time.Parse("20060102", row[endCol])
		if err != nil {
			return nil, fmt.Errorf("calendar.txt: bad end_date %q", row[endCol])
		}
		services[row[sID]] = svc
	}
	return services, nil
}

type trip struct {
	id      string
	service string
}

func parseTrips(fsys fs.FS, routes map[string]bool) ([]trip, error) {
	rows, idx, err := readCSV(fsys, "trips.txt")
	if err != nil {
		return nil, err
	}
	rID, tID, sID := idx("route_id"), idx("trip_id"), idx("service_id")
	if rID < 0 || tID < 0 || sID < 0 {
		return nil, fmt.Errorf("trips.txt: missing headers")
	}
	var trips []trip
	for _, row := range rows {
		if routes[row[rID]] {
			trips = append(trips, trip{id: row[tID], service: row[sID]})
		}
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].id < trips[j].id })
	return trips, nil
}

type stopTimeRow struct {
	seq       int
	station   StationID
	arrival   string
	departure string
}

func parseStopTimes(fsys fs.FS) (map[string][]stopTimeRow, error) {
	rows, idx, err := readCSV(fsys, "stop_times.txt")
	if err != nil {
		return nil, err
	}
	tID := idx("trip_id")
	arr, dep := idx("arrival_time"), idx("departure_time")
	sID, seq := idx("stop_id"), idx("stop_sequence")
	if tID < 0 || arr < 0 || dep < 0 || sID < 0 || seq < 0 {
		return nil, fmt.Errorf("stop_times.txt: missing headers")
	}
	out := map[string][]stopTimeRow{}
	for _, row := range rows {
		sequence, err := strconv.Atoi(row[seq])
		if err != nil || sequence < 1 {
			return nil, fmt.Errorf("stop_times.txt: bad stop_sequence %q for trip %s", row[seq], row[tID])
		}
		station, err := strconv.ParseInt(row[sID], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stop_times.txt: bad stop_id %q", row[sID])
		}
		out[row[tID]] = append(out[row[tID]], stopTimeRow{
			seq:       sequence,
			station:   StationID(station),
			arrival:   row[arr],
			departure: row[dep],
		})
	}
	for id, rows := range out {
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
		for i, r := range rows {
			if r.seq != i+1 {
				return nil, fmt.Errorf("%w: partial train %s", ErrInvariant, id)
			}
		}
	}
	return out, nil
}

func assembleTrain(tripID string, rows []stopTimeRow, date time.Time) (*Train, error) {
	id, err := trainNumber(tripID)
	if err != nil {
		return nil, err
	}
	train := &Train{ID: id, Stops: make([]Stop, 0, len(rows))}
	for _, r := range rows {
		arrival, err := parseStopTime(date, r.arrival)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, err)
		}
		departure, err := parseStopTime(date, r.departure)
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, err)
		}
		train.Stops = append(train.Stops, Stop{Station: r.station, Arrival: arrival, Departure: departure})
	}
	return train, nil
}

// trainNumber extracts the train number from a trip_id; Israel Railways
// encodes it as the digits before the first underscore.
func trainNumber(tripID string) (TrainID, error) {
	digits := tripID
	if i := strings.IndexByte(tripID, '_'); i >= 0 {
		digits = tripID[:i]
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: trip %q has no numeric train number", ErrInvariant, tripID)
	}
	return TrainID(n), nil
}

// parseStopTime resolves an HH:MM:SS offset against a service date. Hours
// of 24 and beyond roll into the following day, as GTFS allows.
func parseStopTime(date time.Time, s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("bad stop time %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return time.Time{}, fmt.Errorf("bad stop time %q", s)
	}
	return date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second), nil
}

func parseStops(fsys fs.FS, used map[StationID]bool) ([]Station, error) {
	rows, idx, err := readCSV(fsys, "stops.txt")
	if err != nil {
		return nil, err
	}
	sID, sName := idx("stop_id"), idx("stop_name")
	if sID < 0 || sName < 0 {
		return nil, fmt.Errorf("stops.txt: missing stop_id or stop_name header")
	}
	var stations []Station
	for _, row := range rows {
		id, err := strconv.ParseInt(row[sID], 10, 64)
		if err != nil {
			continue
		}
		if used[StationID(id)] {
			stations = append(stations, Station{ID: StationID(id), Name: row[sName]})
		}
	}
	return stations, nil
}
