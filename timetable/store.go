package timetable

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trains (
		rowid    INTEGER PRIMARY KEY AUTOINCREMENT,
		train_id INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stops (
		train_rowid INTEGER NOT NULL REFERENCES trains(rowid),
		seq         INTEGER NOT NULL,
		station_id  INTEGER NOT NULL REFERENCES stations(id),
		arrival     INTEGER NOT NULL,
		departure   INTEGER NOT NULL,
		PRIMARY KEY (train_rowid, seq)
	)`,
}

// OpenDB opens (or creates) a timetable database file.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Save writes the timetable into db, replacing any previous contents.
func (tt *Timetable) Save(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM stops", "DELETE FROM trains", "DELETE FROM stations"} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	for _, s := range tt.Stations() {
		if _, err := tx.Exec("INSERT INTO stations (id, name) VALUES (?, ?)", int64(s.ID), s.Name); err != nil {
			return err
		}
	}
	for _, t := range tt.trains {
		res, err := tx.Exec("INSERT INTO trains (train_id) VALUES (?)", int64(t.ID))
		if err != nil {
			return err
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i, stop := range t.Stops {
			_, err := tx.Exec(
				"INSERT INTO stops (train_rowid, seq, station_id, arrival, departure) VALUES (?, ?, ?, ?, ?)",
				rowid, i, int64(stop.Station), stop.Arrival.Unix(), stop.Departure.Unix(),
			)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Load reads a timetable previously written by Save.
func Load(db *sql.DB) (*Timetable, error) {
	rows, err := db.Query("SELECT id, name FROM stations")
	if err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}
	var stations []Station
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, err
		}
		stations = append(stations, Station{ID: StationID(id), Name: name})
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	trainRows, err := db.Query("SELECT rowid, train_id FROM trains ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to read trains: %w", err)
	}
	var order []int64
	byRow := map[int64]*Train{}
	for trainRows.Next() {
		var rowid, id int64
		if err := trainRows.Scan(&rowid, &id); err != nil {
			trainRows.Close()
			return nil, err
		}
		order = append(order, rowid)
		byRow[rowid] = &Train{ID: TrainID(id)}
	}
	if err := trainRows.Close(); err != nil {
		return nil, err
	}

	stopRows, err := db.Query("SELECT train_rowid, station_id, arrival, departure FROM stops ORDER BY train_rowid, seq")
	if err != nil {
		return nil, fmt.Errorf("failed to read stops: %w", err)
	}
	for stopRows.Next() {
		var rowid, station, arrival, departure int64
		if err := stopRows.Scan(&rowid, &station, &arrival, &departure); err != nil {
			stopRows.Close()
			return nil, err
		}
		t := byRow[rowid]
		if t == nil {
			stopRows.Close()
			return nil, fmt.Errorf("stop references unknown train row %d", rowid)
		}
		t.Stops = append(t.Stops, Stop{
			Station:   StationID(station),
			Arrival:   time.Unix(arrival, 0).UTC(),
			Departure: time.Unix(departure, 0).UTC(),
		})
	}
	if err := stopRows.Close(); err != nil {
		return nil, err
	}

	trains := make([]*Train, 0, len(order))
	for _, rowid := range order {
		trains = append(trains, byRow[rowid])
	}
	return New(stations, trains)
}
