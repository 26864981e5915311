// Package cache keeps a local SQLite record of downloaded activities so
// repeat report runs skip refetching from the remote service.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrMiss means the activity is not in the cache.
var ErrMiss = errors.New("cache miss")

// Entry records one downloaded activity and where its file lives.
type Entry struct {
	ActivityID   int64
	ActivityName string
	ActivityType string
	StartTime    time.Time
	Distance     float64 // meters
	Path         string
	FetchedAt    time.Time
}

type Cache struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the cache database at path.
// Use ":memory:" for a throwaway cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache ping: %w", err)
	}

	c := &Cache{db: db}
	if err := c.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		activity_id INTEGER PRIMARY KEY,
		activity_name TEXT,
		activity_type TEXT,
		start_time DATETIME NOT NULL,
		distance REAL,
		path TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("create cache tables: %w", err)
	}
	return nil
}

// Get looks up a cached activity by id. ErrMiss when absent.
func (c *Cache) Get(activityID int64) (*Entry, error) {
	row := c.db.QueryRow(`
		SELECT activity_id, activity_name, activity_type, start_time, distance, path, fetched_at
		FROM activities WHERE activity_id = ?`, activityID)

	var e Entry
	var start, fetched string
	err := row.Scan(&e.ActivityID, &e.ActivityName, &e.ActivityType, &start, &e.Distance, &e.Path, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	if e.StartTime, err = parseSQLiteTime(start); err != nil {
		return nil, err
	}
	if e.FetchedAt, err = parseSQLiteTime(fetched); err != nil {
		return nil, err
	}
	return &e, nil
}

// Put inserts or replaces a cache entry.
func (c *Cache) Put(e *Entry) error {
	fetched := e.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now().UTC()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO activities
			(activity_id, activity_name, activity_type, start_time, distance, path, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ActivityID, e.ActivityName, e.ActivityType,
		e.StartTime.UTC().Format(sqliteTimeLayout), e.Distance, e.Path,
		fetched.Format(sqliteTimeLayout),
	)
	return err
}

func (c *Cache) Close() error { return c.db.Close() }

const sqliteTimeLayout = "2006-01-02 15:04:05"

func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		// go-sqlite3 round-trips time values in RFC3339 form when they
		// were bound as time.Time.
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}
