package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sqlitecloud "github.com/sqlitecloud/sqlitecloud-go"
	"go.uber.org/zap"
)

// Search outcomes recorded in the history table
const (
	SearchStatusOK    = "ok"
	SearchStatusError = "error"
)

// SearchRecord is one discovery request as stored in search_history.
// Only the request and its outcome are kept, never the returned channels.
type SearchRecord struct {
	ID          int64     `json:"id"`
	Query       string    `json:"query"`
	RegionCode  string    `json:"regionCode,omitempty"`
	MaxResults  int       `json:"maxResults"`
	ResultCount int       `json:"resultCount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Database represents the database connection and operations
type Database struct {
	db     *sqlitecloud.SQCloud
	logger *zap.Logger
}

// NewDatabase creates a new database connection
func NewDatabase(connStr string, logger *zap.Logger) (*Database, error) {
	logger.Info("Connecting to SQLite Cloud database", zap.String("dsn", maskConnectionString(connStr)))

	db, err := sqlitecloud.Connect(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite Cloud: %w", err)
	}

	database := &Database{
		db:     db,
		logger: logger,
	}

	if err := database.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return database, nil
}

// maskConnectionString hides the API key in logs
func maskConnectionString(connStr string) string {
	if strings.Contains(connStr, "apikey=") {
		parts := strings.Split(connStr, "apikey=")
		if len(parts) > 1 {
			return parts[0] + "apikey=***"
		}
	}
	return connStr
}

func (d *Database) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			region_code TEXT NOT NULL DEFAULT '',
			max_results INTEGER NOT NULL,
			result_count INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL CHECK(status IN ('ok', 'error')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_search_history_created_at ON search_history(created_at)`,
	}

	for _, stmt := range stmts {
		if err := d.db.Execute(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// RecordSearch stores a discovery request. The SQLite Cloud driver has no
// context support, so ctx is only checked before the call.
func (d *Database) RecordSearch(ctx context.Context, rec SearchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	sql := `INSERT INTO search_history (query, region_code, max_results, result_count, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`

	err := d.db.ExecuteArray(sql, []interface{}{
		rec.Query,
		rec.RegionCode,
		rec.MaxResults,
		rec.ResultCount,
		rec.Status,
		rec.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns the latest searches, newest first
func (d *Database) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sql := `SELECT id, query, region_code, max_results, result_count, status, created_at
			FROM search_history
			ORDER BY id DESC LIMIT ?`

	result, err := d.db.SelectArray(sql, []interface{}{limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}

	records := make([]SearchRecord, 0, result.GetNumberOfRows())
	for row := range result.GetNumberOfRows() {
		cols := make([]string, 7)
		for col := range cols {
			cols[col], err = result.GetStringValue(row, uint64(col))
			if err != nil {
				return nil, fmt.Errorf("failed to read search row %d: %w", row, err)
			}
		}
		records = append(records, scanSearchRecord(cols, d.logger))
	}
	return records, nil
}

func scanSearchRecord(cols []string, logger *zap.Logger) SearchRecord {
	id, _ := strconv.ParseInt(cols[0], 10, 64)
	maxResults, _ := strconv.Atoi(cols[3])
	resultCount, _ := strconv.Atoi(cols[4])

	createdAt, err := parseTimestamp(cols[6])
	if err != nil {
		logger.Warn("Unparsable search timestamp", zap.Int64("id", id), zap.String("value", cols[6]))
	}

	return SearchRecord{
		ID:          id,
		Query:       cols[1],
		RegionCode:  cols[2],
		MaxResults:  maxResults,
		ResultCount: resultCount,
		Status:      cols[5],
		CreatedAt:   createdAt,
	}
}

// parseTimestamp accepts RFC3339 and the CURRENT_TIMESTAMP layout
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", raw)
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
