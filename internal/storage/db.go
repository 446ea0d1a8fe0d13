package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"recovres/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  origin TEXT NOT NULL,
  hash TEXT NOT NULL,
  size INTEGER NOT NULL,
  rawRef TEXT NOT NULL,
  changed INTEGER NOT NULL,
  fetchedAt TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(hash);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL UNIQUE,
  documentId INTEGER NOT NULL,
  tracksCapacity INTEGER NOT NULL,
  lineCount INTEGER NOT NULL,
  recordCount INTEGER NOT NULL,
  outputPath TEXT,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  seq INTEGER NOT NULL,
  email TEXT NOT NULL,
  contactName TEXT NOT NULL,
  phone TEXT NOT NULL,
  residenceName TEXT NOT NULL,
  organizationName TEXT NOT NULL,
  location TEXT NOT NULL,
  county TEXT NOT NULL,
  maxResidents TEXT NOT NULL,
  UNIQUE(runId, seq),
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertDocument(doc internal.DocumentRow) (int, error) {
	result, err := d.conn.Exec(`
INSERT INTO documents (origin, hash, size, rawRef, changed, fetchedAt)
VALUES (?, ?, ?, ?, ?, ?)
`, doc.Origin, doc.Hash, doc.Size, doc.RawRef, doc.Changed, doc.FetchedAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

// InsertRun stores a run and its records in one transaction and returns the run id.
func (d *DB) InsertRun(run internal.RunRow, timings map[string]float64, records []internal.Record) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	timingsJSON, _ := json.Marshal(timings)
	result, err := tx.Exec(`
INSERT INTO runs (traceId, documentId, tracksCapacity, lineCount, recordCount, outputPath, timingsJson)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.DocumentID, run.TracksCapacity, run.LineCount, len(records), run.OutputPath, string(timingsJSON))
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO records (runId, seq, email, contactName, phone, residenceName, organizationName, location, county, maxResidents)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			runID, i+1, r.Email, r.ContactName, r.Phone, r.ResidenceName, r.OrganizationName, r.Location, r.County, r.MaxResidents,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(runID), nil
}

func (d *DB) SetRunOutput(runID int, outputPath string) error {
	_, err := d.conn.Exec(`UPDATE runs SET outputPath = ? WHERE id = ?`, outputPath, runID)
	return err
}

func (d *DB) GetRunRecords(runID int) ([]internal.Record, error) {
	rows, err := d.conn.Query(`
SELECT email, contactName, phone, residenceName, organizationName, location, county, maxResidents
FROM records WHERE runId = ? ORDER BY seq ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Record
	for rows.Next() {
		var r internal.Record
		if err := rows.Scan(&r.Email, &r.ContactName, &r.Phone, &r.ResidenceName, &r.OrganizationName, &r.Location, &r.County, &r.MaxResidents); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const runColumns = `id, traceId, documentId, tracksCapacity, lineCount, recordCount, COALESCE(outputPath, ''), createdAt`

func scanRun(scan func(dest ...any) error) (internal.RunRow, error) {
	var row internal.RunRow
	err := scan(&row.ID, &row.TraceID, &row.DocumentID, &row.TracksCapacity, &row.LineCount, &row.RecordCount, &row.OutputPath, &row.CreatedAt)
	return row, err
}

func (d *DB) GetRun(runID int) (*internal.RunRow, error) {
	row, err := scanRun(d.conn.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, runID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustRun(runID int) (internal.RunRow, error) {
	row, err := d.GetRun(runID)
	if err != nil {
		return internal.RunRow{}, err
	}
	if row == nil {
		return internal.RunRow{}, fmt.Errorf("run not found: id=%d", runID)
	}
	return *row, nil
}

func (d *DB) LatestRun() (*internal.RunRow, error) {
	row, err := scanRun(d.conn.QueryRow(`SELECT ` + runColumns + ` FROM runs ORDER BY id DESC LIMIT 1`).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		row, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
