package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"quotebridge/internal"
)

//go:embed migrations/*.sql
var migrations embed.FS

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

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) InsertUpload(runID, filename, reseller, endUser, currency string, exchangeRate, marginPct float64) (int64, error) {
	result, err := d.conn.Exec(`
INSERT INTO uploads (runId, filename, status, reseller, endUser, currency, exchangeRate, marginPct)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, runID, filename, internal.UploadStatusReceived, reseller, endUser, currency, exchangeRate, marginPct)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) MarkProcessed(uploadID int64, rowCount int, outputRef string) error {
	_, err := d.conn.Exec(`
UPDATE uploads SET status = ?, rowCount = ?, outputRef = ?, error = NULL, updatedAt = CURRENT_TIMESTAMP
WHERE id = ?
`, internal.UploadStatusProcessed, rowCount, outputRef, uploadID)
	return err
}

func (d *DB) MarkFailed(uploadID int64, errText string) error {
	_, err := d.conn.Exec(`
UPDATE uploads SET status = ?, error = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?
`, internal.UploadStatusFailed, errText, uploadID)
	return err
}

func (d *DB) GetUploadByRunID(runID string) (*internal.UploadRow, error) {
	row := d.conn.QueryRow(uploadSelect+` WHERE runId = ?`, runID)
	return scanUpload(row)
}

// LatestProcessed resolves the most recent successful run, if any.
func (d *DB) LatestProcessed() (*internal.UploadRow, error) {
	row := d.conn.QueryRow(uploadSelect+` WHERE status = ? ORDER BY id DESC LIMIT 1`, internal.UploadStatusProcessed)
	return scanUpload(row)
}

func (d *DB) ListUploads(limit int) ([]internal.UploadRow, error) {
	rows, err := d.conn.Query(uploadSelect+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.UploadRow
	for rows.Next() {
		var u internal.UploadRow
		var endUser, outputRef, errText sql.NullString
		if err := rows.Scan(&u.ID, &u.RunID, &u.Filename, &u.Status, &u.Reseller, &endUser, &u.Currency, &u.ExchangeRate, &u.MarginPct, &u.RowCount, &outputRef, &errText, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.EndUser = endUser.String
		u.OutputRef = outputRef.String
		u.Error = errText.String
		out = append(out, u)
	}
	return out, rows.Err()
}

const uploadSelect = `
SELECT id, runId, filename, status, reseller, endUser, currency, exchangeRate, marginPct, rowCount, outputRef, error, createdAt
FROM uploads`

func scanUpload(row *sql.Row) (*internal.UploadRow, error) {
	var u internal.UploadRow
	var endUser, outputRef, errText sql.NullString
	err := row.Scan(&u.ID, &u.RunID, &u.Filename, &u.Status, &u.Reseller, &endUser, &u.Currency, &u.ExchangeRate, &u.MarginPct, &u.RowCount, &outputRef, &errText, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.EndUser = endUser.String
	u.OutputRef = outputRef.String
	u.Error = errText.String
	return &u, nil
}
