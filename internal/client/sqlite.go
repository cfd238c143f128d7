package client

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteClient reads the filter table from a local SQLite database.
// The connection is switched to query_only so the catalog cannot be written
// through it.
type SQLiteClient struct {
	db    *sql.DB
	mu    sync.Mutex
	path  string
	table string
}

// NewSQLiteClient opens the database at path. The file must already exist.
func NewSQLiteClient(path, table string) (*SQLiteClient, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if table == "" {
		table = defaultTable
	}
	if !validIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite catalog: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// query_only is per connection; a single connection keeps it in force.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set query_only: %w", err)
	}

	return &SQLiteClient{db: db, path: path, table: table}, nil
}

// Name identifies the source in logs and the UI.
func (c *SQLiteClient) Name() string {
	return "sqlite:" + c.path
}

// GetFilters returns every row of the filter table in rowid order.
func (c *SQLiteClient) GetFilters(ctx context.Context) ([]FilterRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	query := "SELECT id, marca, modelo, caudal, volumen_vaso_filtro FROM " + c.table + " ORDER BY rowid"
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("GetFilters: %w", err)
	}
	defer rows.Close()

	var out []FilterRow
	for rows.Next() {
		var (
			id            any
			marca, modelo sql.NullString
			caudal, vol   sql.NullFloat64
		)
		if err := rows.Scan(&id, &marca, &modelo, &caudal, &vol); err != nil {
			return nil, fmt.Errorf("GetFilters scan: %w", err)
		}
		row := FilterRow{
			ID:     sqliteRowID(id),
			Marca:  marca.String,
			Modelo: modelo.String,
		}
		if caudal.Valid {
			row.Caudal = Float(caudal.Float64)
		}
		if vol.Valid {
			row.VolumenVasoFiltro = Float(vol.Float64)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetFilters rows: %w", err)
	}
	return out, nil
}

// Ping verifies the database is reachable.
func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the database handle.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

func sqliteRowID(v any) RowID {
	switch id := v.(type) {
	case nil:
		return ""
	case int64:
		return rowIDFromInt64(id)
	case float64:
		return RowID(strconv.FormatFloat(id, 'f', -1, 64))
	case []byte:
		return RowID(id)
	case string:
		return RowID(id)
	default:
		return RowID(fmt.Sprint(id))
	}
}
