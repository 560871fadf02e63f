package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DB wraps the SQLite connection with activity queries.
type DB struct {
	db *sql.DB
}

func newDB(db *sql.DB) *DB {
	return &DB{db: db}
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Exists reports whether an activity with the given hash is already
// stored.
func (d *DB) Exists(hash string) (bool, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM activities WHERE hash = ?`, hash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: checking hash: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Upsert stores an activity, replacing any existing row with the same
// hash. The whole row is written in one statement so a re-import can
// never leave a half-updated record.
func (d *DB) Upsert(a *Activity) error {
	data, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	_, err = d.db.Exec(
		`INSERT OR REPLACE INTO activities (hash, filename, date, session_id, json_data) VALUES (?, ?, ?, ?, ?)`,
		a.Hash, a.Filename, a.Date.Format(dateLayout), a.SessionID, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: saving activity: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes an activity by hash. Deleting a hash that is not
// stored is not an error.
func (d *DB) Delete(hash string) error {
	if _, err := d.db.Exec(`DELETE FROM activities WHERE hash = ?`, hash); err != nil {
		return fmt.Errorf("%w: deleting activity: %v", ErrUnavailable, err)
	}
	return nil
}

// Count returns the total number of stored activities.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting activities: %v", ErrUnavailable, err)
	}
	return n, nil
}

// Query returns the activities inside the window, newest first. For
// WindowLastImport, sessionID selects the batch; a zero sessionID
// means no import has happened yet and yields an empty result. Rows
// whose JSON payload fails to decode are reported as RowErrors and
// skipped.
func (d *DB) Query(w Window, sessionID int64) ([]Activity, []RowError, error) {
	var rows *sql.Rows
	var err error
	const base = `SELECT hash, filename, date, session_id, json_data FROM activities`
	const order = ` ORDER BY date DESC, hash`

	switch {
	case w == WindowLastImport && sessionID == 0:
		return nil, nil, nil
	case w == WindowLastImport:
		rows, err = d.db.Query(base+` WHERE session_id = ?`+order, sessionID)
	case w == WindowYear:
		cutoff := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.Local).Format(dateLayout)
		rows, err = d.db.Query(base+` WHERE date >= ?`+order, cutoff)
	case w.days() > 0:
		cutoff := time.Now().AddDate(0, 0, -w.days()).Format(dateLayout)
		rows, err = d.db.Query(base+` WHERE date >= ?`+order, cutoff)
	default:
		rows, err = d.db.Query(base + order)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: querying activities: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var activities []Activity
	var rowErrs []RowError
	for rows.Next() {
		var a Activity
		var dateStr, jsonData string
		if err := rows.Scan(&a.Hash, &a.Filename, &dateStr, &a.SessionID, &jsonData); err != nil {
			return nil, nil, fmt.Errorf("%w: scanning row: %v", ErrUnavailable, err)
		}
		a.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Hash: a.Hash, Filename: a.Filename, Err: fmt.Errorf("parsing date: %w", err)})
			continue
		}
		if err := json.Unmarshal([]byte(jsonData), &a.Metrics); err != nil {
			rowErrs = append(rowErrs, RowError{Hash: a.Hash, Filename: a.Filename, Err: fmt.Errorf("decoding metrics: %w", err)})
			continue
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: reading rows: %v", ErrUnavailable, err)
	}
	return activities, rowErrs, nil
}
