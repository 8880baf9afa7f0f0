package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// CacheStoreImpl handles durable storage of churn payloads using various
// database backends.
type CacheStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
	location  string
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// openBackendDB opens and pings a database handle for the given backend.
// NoneBackend yields a nil handle, which every store treats as a no-op.
func openBackendDB(backend schema.DatabaseBackend, connStr, defaultSQLitePath string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = defaultSQLitePath
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, "", fmt.Errorf("failed to open SQLite store at %q: %w", dbPath, err)
		}
		return db, dbPath, nil

	case schema.MySQLBackend:
		// connStr should be: user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to MySQL: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, "", fmt.Errorf("failed to connect to MySQL. Check that the server is running and connection parameters are valid: %w", err)
		}
		return db, connStr, nil

	case schema.PostgreSQLBackend:
		// connStr should be: host=localhost port=5432 user=postgres dbname=mydb
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL. Check that the server is running and connection parameters are valid: %w", err)
		}
		return db, connStr, nil

	case schema.NoneBackend:
		return nil, "", nil

	default:
		return nil, "", fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// NewCacheStore initializes and returns a new CacheStore for the backend.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	db, location, err := openBackendDB(backend, connStr, contract.GetCacheDBFilePath())
	if err != nil {
		return nil, err
	}

	store := &CacheStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
		location:  location,
	}
	if db == nil {
		return store, nil
	}

	if _, err := db.Exec(getCreateCacheTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return store, nil
}

// getCreateCacheTableQuery returns the CREATE TABLE query for the backend.
func getCreateCacheTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INT NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Get retrieves a value by key from the store. A miss is not an error.
func (ps *CacheStoreImpl) Get(key string) ([]byte, int, time.Time, bool, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, 0, time.Time{}, false, nil
	}

	var value []byte
	var version int
	var ts int64

	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	query := fmt.Sprintf(`SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = %s`,
		quotedTableName, placeholderFor(ps.backend, 1))
	row := ps.db.QueryRow(query, key)

	if err := row.Scan(&value, &version, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, time.Time{}, false, nil
		}
		return nil, 0, time.Time{}, false, err
	}
	return value, version, time.Unix(ts, 0), true, nil
}

// Set inserts or replaces a key/value pair in the store, stamping it with
// the current time.
func (ps *CacheStoreImpl) Set(key string, value []byte, version int) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}

	_, err := ps.db.Exec(ps.getUpsertQuery(), key, value, version, time.Now().Unix())
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ps *CacheStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	switch ps.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_version = new.cache_version, cache_timestamp = new.cache_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_version = EXCLUDED.cache_version, cache_timestamp = EXCLUDED.cache_timestamp`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ps *CacheStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the cache store.
func (ps *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:  ps.backend,
		Location: ps.location,
	}

	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(countQuery).Scan(&status.EntryCount); err != nil {
		return status, fmt.Errorf("failed to get entry count: %w", err)
	}
	if status.EntryCount == 0 {
		return status, nil
	}

	var oldestTs, newestTs int64
	boundsQuery := fmt.Sprintf("SELECT MIN(cache_timestamp), MAX(cache_timestamp) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(boundsQuery).Scan(&oldestTs, &newestTs); err != nil {
		return status, fmt.Errorf("failed to get entry time bounds: %w", err)
	}
	oldest := time.Unix(oldestTs, 0)
	newest := time.Unix(newestTs, 0)
	status.OldestEntry = &oldest
	status.NewestEntry = &newest

	ps.fillSize(&status)
	return status, nil
}

// fillSize estimates the table size per backend; a failed estimate falls
// back to a rough per-entry guess.
func (ps *CacheStoreImpl) fillSize(status *schema.CacheStatus) {
	switch ps.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ps.db.QueryRow(sizeQuery).Scan(&status.SizeBytes); err != nil {
			status.SizeBytes = 0
		}

	case schema.MySQLBackend:
		status.SizeBytes = status.EntryCount * 1000
		status.SizeEstimate = true
		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil || cfg.DBName == "" {
			return
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := ps.db.QueryRow(sizeQuery, cfg.DBName, ps.tableName).Scan(&status.SizeBytes); err == nil {
			status.SizeEstimate = false
		}

	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1)"
		if err := ps.db.QueryRow(sizeQuery, ps.tableName).Scan(&status.SizeBytes); err != nil {
			status.SizeBytes = status.EntryCount * 1000
			status.SizeEstimate = true
		}
	}
}
