package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/harail/harail"
	"github.com/harail/harail/config"
	"github.com/harail/harail/timetable"
)

func main() {
	db := flag.String("db", "harail.db", "timetable database file")
	gtfs := flag.String("gtfs", "", "GTFS feed to parse, zip file or directory (parse-gtfs)")
	date := flag.String("date", "", "date in DD/MM/YYYY format (default: today)")
	timeOfDay := flag.String("time", "", "time in HH:MM:SS format (default: midnight)")
	length := flag.Int("length", 1, "length of the search period in days")
	delayed := flag.Bool("delayed", false, "delay leaving time when the arrival time is not impacted")
	multiple := flag.Bool("multiple", false, "show multiple train options")
	jsonOut := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	harail.InitLogging()
	if err := run(cmdArgs(), *db, *gtfs, *date, *timeOfDay, *length, *delayed, *multiple, *jsonOut); err != nil {
		log.Fatalf("%v", err)
	}
}

func cmdArgs() []string {
	if flag.NArg() == 0 {
		return []string{""}
	}
	return flag.Args()
}

func run(args []string, db, gtfs, date, timeOfDay string, length int, delayed, multiple, jsonOut bool) error {
	switch args[0] {
	case "parse-gtfs":
		return parseGTFS(db, gtfs, date, length)
	case "list-stations":
		return withTimetable(db, func(tt *timetable.Timetable) error { return listStations(tt, jsonOut) })
	case "list-trains":
		return withTimetable(db, listTrains)
	case "date-info":
		return withTimetable(db, dateInfo)
	case "find":
		if len(args) != 3 {
			return fmt.Errorf("usage: harail find <start station> <dest station>")
		}
		return withTimetable(db, func(tt *timetable.Timetable) error {
			return find(tt, args[1], args[2], date, timeOfDay, length, delayed, multiple, jsonOut)
		})
	case "serve":
		if err := config.LoadAppConfig(); err != nil {
			return err
		}
		if config.Config.Database.Path != "" {
			db = config.Config.Database.Path
		}
		return withTimetable(db, serve)
	default:
		return fmt.Errorf("usage: harail [flags] parse-gtfs|list-stations|list-trains|date-info|find|serve")
	}
}

func withTimetable(path string, fn func(*timetable.Timetable) error) error {
	db, err := timetable.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	tt, err := timetable.Load(db)
	if err != nil {
		return fmt.Errorf("could not load timetable database: %w", err)
	}
	return fn(tt)
}

func parseGTFS(db, gtfs, date string, length int) error {
	if gtfs == "" {
		return fmt.Errorf("parse-gtfs requires -gtfs")
	}
	start, err := parseDateTime(date, "")
	if err != nil {
		return err
	}
	end := start.AddDate(0, 0, length)

	info, err := os.Stat(gtfs)
	if err != nil {
		return err
	}
	var tt *timetable.Timetable
	if info.IsDir() {
		tt, err = timetable.FromGTFSDirectory(gtfs, start, end)
	} else {
		tt, err = timetable.FromGTFSZip(gtfs, start, end)
	}
	if err != nil {
		return fmt.Errorf("could not load GTFS feed: %w", err)
	}

	out, err := timetable.OpenDB(db)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := tt.Save(out); err != nil {
		return fmt.Errorf("could not write timetable database: %w", err)
	}
	log.Printf("parsed %d stations, %d trains into %s", len(tt.Stations()), len(tt.Trains()), db)
	return nil
}

func listStations(tt *timetable.Timetable, jsonOut bool) error {
	stations := tt.Stations()
	if jsonOut {
		type station struct {
			ID   timetable.StationID `json:"id"`
			Name string              `json:"name"`
		}
		out := make([]station, 0, len(stations))
		for _, s := range stations {
			out = append(out, station{ID: s.ID, Name: s.Name})
		}
		return printJSON(out)
	}
	for _, s := range stations {
		fmt.Println(s)
	}
	return nil
}

func listTrains(tt *timetable.Timetable) error {
	for _, t := range tt.Trains() {
		fmt.Printf("%d : %d (%s) -> %d (%s)\n",
			t.ID,
			t.First().Station, t.First().Departure.UTC().Format("2006-01-02 15:04"),
			t.Last().Station, t.Last().Arrival.UTC().Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func dateInfo(tt *timetable.Timetable) error {
	from, ok := tt.StartDate()
	if !ok {
		return fmt.Errorf("empty database")
	}
	to, _ := tt.EndDate()
	fmt.Printf("%s - %s\n", from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	return nil
}

func find(tt *timetable.Timetable, from, to, date, timeOfDay string, length int, delayed, multiple, jsonOut bool) error {
	start, err := parseDateTime(date, timeOfDay)
	if err != nil {
		return err
	}
	startStation, err := resolveStation(tt, from)
	if err != nil {
		return err
	}
	endStation, err := resolveStation(tt, to)
	if err != nil {
		return err
	}

	q := harail.Query{
		Start:     startStation.ID,
		End:       endStation.ID,
		StartTime: start,
		EndTime:   start.AddDate(0, 0, length),
	}
	switch {
	case multiple:
		q.Mode = harail.Multi
	case delayed:
		q.Mode = harail.DelayedStart
	}
	journeys, err := harail.FindRoute(tt, q)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(journeys)
	}
	for i, j := range journeys {
		if i > 0 {
			fmt.Println()
		}
		printJourney(tt, j)
	}
	return nil
}

func printJourney(tt *timetable.Timetable, j harail.Journey) {
	if len(j.Parts) == 0 {
		fmt.Println("already at destination")
		return
	}
	for _, p := range j.Parts {
		fmt.Printf("%d: %s (%s) -> %s (%s)\n",
			p.Train,
			stationName(tt, p.Start.Station), p.Start.Departure.UTC().Format("15:04"),
			stationName(tt, p.End.Station), p.End.Arrival.UTC().Format("15:04"),
		)
	}
}

func stationName(tt *timetable.Timetable, id timetable.StationID) string {
	if s, ok := tt.Station(id); ok {
		return s.Name
	}
	return strconv.FormatInt(int64(id), 10)
}

// resolveStation accepts a numeric station id or an exact station name.
func resolveStation(tt *timetable.Timetable, s string) (timetable.Station, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if station, ok := tt.Station(timetable.StationID(id)); ok {
			return station, nil
		}
		return timetable.Station{}, fmt.Errorf("could not find station %d", id)
	}
	if station, ok := tt.FindStation(s); ok {
		return station, nil
	}
	return timetable.Station{}, fmt.Errorf("could not find station %q", s)
}

func serve(tt *timetable.Timetable) error {
	srv := harail.NewServer(tt)
	srv.Start()
	srv.HandleGracefulShutdown()
	return nil
}

func parseDateTime(date, timeOfDay string) (time.Time, error) {
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("02/01/2006", date)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date %q", date)
		}
		day = parsed
	}
	y, m, d := day.Date()
	at := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if timeOfDay != "" {
		clock, err := time.Parse("15:04:05", timeOfDay)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time %q", timeOfDay)
		}
		at = at.Add(time.Duration(clock.Hour())*time.Hour +
			time.Duration(clock.Minute())*time.Minute +
			time.Duration(clock.Second())*time.Second)
	}
	return at, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
