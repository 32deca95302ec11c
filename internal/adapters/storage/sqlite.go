package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"serverless-blog-api/internal/models"
)

// Same character set DynamoDB accepts for table names
var tableNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,255}$`)

// SQLiteTable implements Table on a local SQLite database. Each record is
// stored as a JSON document next to its id, which keeps the no-schema
// contract of the DynamoDB table.
type SQLiteTable struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewSQLiteTable opens (creating if needed) the database at dbPath and the
// records table inside it
func NewSQLiteTable(ctx context.Context, dbPath, tableName string, logger *logrus.Logger) (*SQLiteTable, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if !tableNameRegex.MatchString(tableName) {
		return nil, NewStorageError("Open", "", fmt.Errorf("%w: %q", ErrInvalidTableName, tableName))
	}

	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	t := &SQLiteTable{
		db:     db,
		table:  tableName,
		logger: logger,
	}

	if err := t.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"db_path": absPath,
		"table":   tableName,
	}).Info("SQLite table ready")

	return t, nil
}

func (t *SQLiteTable) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		id TEXT PRIMARY KEY,
		item TEXT NOT NULL
	)`, t.table)

	if _, err := t.db.ExecContext(ctx, query); err != nil {
		return NewStorageError("CreateTable", "", err)
	}
	return nil
}

// Scan implements Table.Scan
func (t *SQLiteTable) Scan(ctx context.Context) ([]models.Record, error) {
	query := fmt.Sprintf("SELECT item FROM %q", t.table)

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, NewStorageError("Scan", "", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, NewStorageError("Scan", "", err)
		}

		record, err := models.DecodeRecord([]byte(item))
		if err != nil {
			return nil, NewStorageError("Scan", "", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, NewStorageError("Scan", "", err)
	}

	return records, nil
}

// Put implements Table.Put
func (t *SQLiteTable) Put(ctx context.Context, record models.Record) error {
	if !record.HasID() {
		return NewStorageError("Put", "", ErrMissingKey)
	}

	item, err := json.Marshal(record)
	if err != nil {
		return NewStorageError("Put", record.ID(), fmt.Errorf("failed to marshal item: %w", err))
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO %q (id, item) VALUES (?, ?)", t.table)
	if _, err := t.db.ExecContext(ctx, query, record.ID(), string(item)); err != nil {
		return NewStorageError("Put", record.ID(), err)
	}

	return nil
}

// Get implements Table.Get
func (t *SQLiteTable) Get(ctx context.Context, id string) (models.Record, error) {
	query := fmt.Sprintf("SELECT item FROM %q WHERE id = ?", t.table)

	var item string
	err := t.db.QueryRowContext(ctx, query, id).Scan(&item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStorageError("Get", id, ErrItemNotFound)
		}
		return nil, NewStorageError("Get", id, err)
	}

	record, err := models.DecodeRecord([]byte(item))
	if err != nil {
		return nil, NewStorageError("Get", id, err)
	}

	return record, nil
}

// Delete implements Table.Delete
func (t *SQLiteTable) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %q WHERE id = ?", t.table)

	if _, err := t.db.ExecContext(ctx, query, id); err != nil {
		return NewStorageError("Delete", id, err)
	}

	return nil
}

// Close implements Table.Close
func (t *SQLiteTable) Close() error {
	if err := t.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	t.logger.Info("Database connection closed")
	return nil
}
