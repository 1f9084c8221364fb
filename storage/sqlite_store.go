package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitelog/internal/timeutil"
	"sitelog/logentry"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var (
	ErrEntryNotFound      = errors.New("log entry not found")
	ErrUnsupportedField   = errors.New("unsupported field for distinct values")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// distinctColumns is the allowlist for DistinctValues. Everything else is
// rejected rather than interpolated into SQL.
var distinctColumns = map[string]string{
	"site_name": "site_name",
	"kst":       "kst",
	"activity":  "activity",
	"employee":  "employee",
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %v", ErrStorageUnavailable, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ensureSchema is idempotent and safe to run on every open.
func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	employee TEXT NOT NULL,
	site_name TEXT NOT NULL,
	kst TEXT NOT NULL,
	activity TEXT NOT NULL,
	start_time TEXT,
	end_time TEXT,
	day_fraction REAL NOT NULL CHECK(day_fraction > 0 AND day_fraction <= 1.0),
	duration_hours REAL,
	result TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const entryColumns = `
	id,
	date,
	employee,
	site_name,
	kst,
	activity,
	start_time,
	end_time,
	day_fraction,
	duration_hours,
	result,
	notes,
	created_at,
	updated_at`

// CreateEntry validates and persists a new entry, assigning its id and both
// timestamps. The caller's id and timestamps are ignored.
func (s *SQLiteStore) CreateEntry(entry logentry.Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	const insertStmt = `
INSERT INTO entries (
	date,
	employee,
	site_name,
	kst,
	activity,
	start_time,
	end_time,
	day_fraction,
	duration_hours,
	result,
	notes,
	created_at,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	now := time.Now().Format(time.RFC3339Nano)
	res, err := s.db.Exec(
		insertStmt,
		timeutil.FormatDate(entry.Date),
		entry.Employee,
		entry.SiteName,
		entry.Kst,
		entry.Activity,
		clockToNullString(entry.StartTime),
		clockToNullString(entry.EndTime),
		entry.DayFraction,
		floatToNull(entry.DurationHours),
		entry.Result,
		entry.Notes,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid inserted row id %d", id)
	}
	return id, nil
}

// UpdateEntry replaces all mutable fields for the row with entry.ID, keeping
// created_at and refreshing updated_at.
func (s *SQLiteStore) UpdateEntry(entry logentry.Entry) error {
	if entry.ID <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	const updateStmt = `
UPDATE entries
SET date = ?,
	employee = ?,
	site_name = ?,
	kst = ?,
	activity = ?,
	start_time = ?,
	end_time = ?,
	day_fraction = ?,
	duration_hours = ?,
	result = ?,
	notes = ?,
	updated_at = ?
WHERE id = ?;`

	res, err := s.db.Exec(
		updateStmt,
		timeutil.FormatDate(entry.Date),
		entry.Employee,
		entry.SiteName,
		entry.Kst,
		entry.Activity,
		clockToNullString(entry.StartTime),
		clockToNullString(entry.EndTime),
		entry.DayFraction,
		floatToNull(entry.DurationHours),
		entry.Result,
		entry.Notes,
		time.Now().Format(time.RFC3339Nano),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", entry.ID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteEntry removes the row with the given id. Deleting an unknown id is
// reported as ErrEntryNotFound, never silently ignored.
func (s *SQLiteStore) DeleteEntry(id int64) error {
	if id <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}

	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read deleted row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// GetEntry returns one entry by id. The second return value is false when the
// id does not exist.
func (s *SQLiteStore) GetEntry(id int64) (logentry.Entry, bool, error) {
	if id <= 0 {
		return logentry.Entry{}, false, fmt.Errorf("entry id must be > 0")
	}

	row := s.db.QueryRow(`SELECT`+entryColumns+` FROM entries WHERE id = ?;`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return logentry.Entry{}, false, nil
		}
		return logentry.Entry{}, false, fmt.Errorf("query entry %d: %w", id, err)
	}
	return entry, true, nil
}

// ListByDate returns the entries of one day: interval entries first ordered by
// start time, fraction-mode entries after them, ties broken by creation order.
func (s *SQLiteStore) ListByDate(date time.Time) ([]logentry.Entry, error) {
	const query = `
SELECT` + entryColumns + `
FROM entries
WHERE date = ?
ORDER BY start_time IS NULL, start_time, id;`

	rows, err := s.db.Query(query, timeutil.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("query entries for %s: %w", timeutil.FormatDate(date), err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// LatestEntry returns the most recently created entry, used to prefill the
// last site worked on. The second return value is false for an empty store.
func (s *SQLiteStore) LatestEntry() (logentry.Entry, bool, error) {
	row := s.db.QueryRow(`SELECT` + entryColumns + ` FROM entries ORDER BY id DESC LIMIT 1;`)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return logentry.Entry{}, false, nil
		}
		return logentry.Entry{}, false, fmt.Errorf("query latest entry: %w", err)
	}
	return entry, true, nil
}

// DistinctValues returns the distinct non-empty values of one of the
// suggestion fields in ascending lexical order.
func (s *SQLiteStore) DistinctValues(field string) ([]string, error) {
	column, ok := distinctColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	query := fmt.Sprintf(
		`SELECT DISTINCT %s FROM entries WHERE %s != '' ORDER BY %s;`,
		column, column, column,
	)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", field, err)
	}
	defer rows.Close()

	values := make([]string, 0, 32)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan distinct %s: %w", field, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distinct %s: %w", field, err)
	}
	return values, nil
}

// EntriesInMonth returns all entries with dates in the half-open range
// [first of month, first of next month), ordered by date, site and kst.
func (s *SQLiteStore) EntriesInMonth(year int, month time.Month) ([]logentry.Entry, error) {
	start, end := timeutil.MonthRange(year, month)

	const query = `
SELECT` + entryColumns + `
FROM entries
WHERE date >= ? AND date < ?
ORDER BY date, site_name, kst, id;`

	rows, err := s.db.Query(query, timeutil.FormatDate(start), timeutil.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("query entries for %04d-%02d: %w", year, int(month), err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// DuplicateEntry creates a new entry with the same field values as the source
// but a fresh id and timestamps. A non-zero date overrides the source date.
func (s *SQLiteStore) DuplicateEntry(id int64, date time.Time) (int64, error) {
	entry, found, err := s.GetEntry(id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrEntryNotFound
	}

	if !date.IsZero() {
		entry.Date = date
	}
	return s.CreateEntry(entry)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (logentry.Entry, error) {
	var (
		entry         logentry.Entry
		dateRaw       string
		startRaw      sql.NullString
		endRaw        sql.NullString
		durationHours sql.NullFloat64
		createdRaw    string
		updatedRaw    string
	)

	if err := row.Scan(
		&entry.ID,
		&dateRaw,
		&entry.Employee,
		&entry.SiteName,
		&entry.Kst,
		&entry.Activity,
		&startRaw,
		&endRaw,
		&entry.DayFraction,
		&durationHours,
		&entry.Result,
		&entry.Notes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return logentry.Entry{}, err
	}

	var err error
	entry.Date, err = timeutil.ParseDate(dateRaw)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse entry date %q: %w", dateRaw, err)
	}
	entry.StartTime, err = nullStringToClock(startRaw)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse start time: %w", err)
	}
	entry.EndTime, err = nullStringToClock(endRaw)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse end time: %w", err)
	}
	if durationHours.Valid {
		value := durationHours.Float64
		entry.DurationHours = &value
	}
	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedRaw)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse updated_at %q: %w", updatedRaw, err)
	}
	return entry, nil
}

func collectEntries(rows *sql.Rows) ([]logentry.Entry, error) {
	entries := make([]logentry.Entry, 0, 64)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func clockToNullString(value *timeutil.Clock) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: value.String(), Valid: true}
}

func nullStringToClock(value sql.NullString) (*timeutil.Clock, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	parsed, err := timeutil.ParseClock(value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func floatToNull(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
