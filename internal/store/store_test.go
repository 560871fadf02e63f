package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := NewTestDB(sqlDB)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func testActivity(hash string, date time.Time, sessionID int64) *Activity {
	return &Activity{
		Hash:      hash,
		Filename:  hash + ".fit",
		Date:      date,
		SessionID: sessionID,
		Metrics: Metrics{
			DistanceMi:       6.2,
			EfficiencyFactor: 1.1,
			AvgCadence:       162,
		},
	}
}

func TestUpsertAndExists(t *testing.T) {
	db := setupTestDB(t)

	exists, err := db.Exists("abc123")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Fatal("Exists() = true before insert")
	}

	if err := db.Upsert(testActivity("abc123", time.Now(), 1)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	exists, err = db.Exists("abc123")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after insert")
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	db := setupTestDB(t)

	a := testActivity("abc123", time.Now(), 1)
	if err := db.Upsert(a); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	a.Metrics.EfficiencyFactor = 1.3
	a.SessionID = 2
	if err := db.Upsert(a); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("Count() = %d after re-upsert, want 1", count)
	}

	activities, _, err := db.Query(WindowAll, 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Query() returned %d activities, want 1", len(activities))
	}
	if got := activities[0].Metrics.EfficiencyFactor; got != 1.3 {
		t.Errorf("EfficiencyFactor = %v after re-upsert, want 1.3", got)
	}
	if got := activities[0].SessionID; got != 2 {
		t.Errorf("SessionID = %d after re-upsert, want 2", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Upsert(testActivity("abc123", time.Now(), 1)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := db.Delete("abc123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := db.Delete("abc123"); err != nil {
		t.Errorf("Delete() of missing hash error = %v, want nil", err)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d after delete, want 0", count)
	}
}

func TestQueryWindows(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	for _, a := range []*Activity{
		testActivity("recent", now.AddDate(0, 0, -2), 1),
		testActivity("lastmonth", now.AddDate(0, 0, -20), 1),
		testActivity("lastquarter", now.AddDate(0, 0, -60), 1),
		testActivity("old", now.AddDate(0, 0, -200), 1),
	} {
		if err := db.Upsert(a); err != nil {
			t.Fatalf("Upsert(%s) error = %v", a.Hash, err)
		}
	}

	tests := []struct {
		window Window
		want   int
	}{
		{WindowMonth, 2},
		{WindowQuarter, 3},
		{WindowAll, 4},
	}
	for _, tt := range tests {
		t.Run(tt.window.String(), func(t *testing.T) {
			activities, rowErrs, err := db.Query(tt.window, 0)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(rowErrs) != 0 {
				t.Errorf("Query() returned %d row errors, want 0", len(rowErrs))
			}
			if len(activities) != tt.want {
				t.Errorf("Query() returned %d activities, want %d", len(activities), tt.want)
			}
			for i := 1; i < len(activities); i++ {
				if activities[i].Date.After(activities[i-1].Date) {
					t.Errorf("activities not ordered newest first: %v before %v",
						activities[i-1].Date, activities[i].Date)
				}
			}
		})
	}
}

func TestQueryYearWindow(t *testing.T) {
	db := setupTestDB(t)

	jan1 := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.Local)
	for _, a := range []*Activity{
		testActivity("thisyear", jan1, 1),
		testActivity("lastyear", jan1.AddDate(0, 0, -1), 1),
	} {
		if err := db.Upsert(a); err != nil {
			t.Fatalf("Upsert(%s) error = %v", a.Hash, err)
		}
	}

	activities, _, err := db.Query(WindowYear, 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(activities) != 1 || activities[0].Hash != "thisyear" {
		t.Errorf("Query(WindowYear) returned %d activities, want just this year's", len(activities))
	}
}

func TestQueryLastImport(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	for _, a := range []*Activity{
		testActivity("first", now.AddDate(0, 0, -10), 100),
		testActivity("second", now.AddDate(0, 0, -1), 200),
		testActivity("third", now, 200),
	} {
		if err := db.Upsert(a); err != nil {
			t.Fatalf("Upsert(%s) error = %v", a.Hash, err)
		}
	}

	activities, _, err := db.Query(WindowLastImport, 200)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(activities) != 2 {
		t.Errorf("Query(WindowLastImport, 200) returned %d activities, want 2", len(activities))
	}

	// A zero session ID means nothing has been imported yet.
	activities, _, err = db.Query(WindowLastImport, 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("Query(WindowLastImport, 0) returned %d activities, want 0", len(activities))
	}
}

func TestQueryIsolatesCorruptRows(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Upsert(testActivity("good", time.Now(), 1)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	_, err := db.db.Exec(
		`INSERT INTO activities (hash, filename, date, session_id, json_data) VALUES (?, ?, ?, ?, ?)`,
		"bad", "bad.fit", time.Now().Format(dateLayout), 1, "{not json",
	)
	if err != nil {
		t.Fatalf("inserting corrupt row: %v", err)
	}

	activities, rowErrs, err := db.Query(WindowAll, 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(activities) != 1 || activities[0].Hash != "good" {
		t.Errorf("Query() returned %d activities, want just the good row", len(activities))
	}
	if len(rowErrs) != 1 {
		t.Fatalf("Query() returned %d row errors, want 1", len(rowErrs))
	}
	if rowErrs[0].Hash != "bad" {
		t.Errorf("RowError.Hash = %q, want %q", rowErrs[0].Hash, "bad")
	}
}
