package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/featlens/featlens/internal/contract"
	"github.com/featlens/featlens/schema"
)

// History table names. The migration files must stay in sync with these.
const (
	runsTableName  = "featlens_runs"
	statsTableName = "featlens_feature_stats"
)

// storedTimeFormat is how timestamps are persisted across all backends.
// Storing text keeps the scan path identical for sqlite, mysql and pgx.
const storedTimeFormat = time.RFC3339Nano

// HistoryStoreImpl persists analysis runs and per-feature aggregates.
type HistoryStoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore initializes and returns a new HistoryStore for the backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	db, location, err := openBackendDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	store := &HistoryStoreImpl{db: db, backend: backend, location: location}
	if db == nil {
		return store, nil
	}

	for _, query := range historyTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}
	return store, nil
}

// historyTableQueries returns the CREATE TABLE statements for the history
// schema. Identifiers and column types are kept portable; run ids are
// assigned by the application, so no backend autoincrement is needed.
func historyTableQueries(backend schema.DatabaseBackend) []string {
	runs := quoteTableName(runsTableName, backend)
	stats := quoteTableName(statsTableName, backend)
	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				start_time VARCHAR(64) NOT NULL,
				end_time VARCHAR(64),
				run_duration_ms BIGINT,
				total_symbols BIGINT,
				config_params VARCHAR(2048),
				PRIMARY KEY (run_id)
			);
		`, runs),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				feature_id VARCHAR(255) NOT NULL,
				run_time VARCHAR(64) NOT NULL,
				functions BIGINT NOT NULL,
				methods BIGINT NOT NULL,
				classes BIGINT NOT NULL,
				total BIGINT NOT NULL,
				commits BIGINT NOT NULL,
				churn BIGINT NOT NULL,
				hotspot_score BIGINT NOT NULL,
				PRIMARY KEY (run_id, feature_id)
			);
		`, stats),
	}
}

// BeginRun inserts a run row and returns its identifier. Identifiers are
// allocated as MAX(run_id)+1; the CLI is single-process, so this stays
// race-free in practice.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams string) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	runs := quoteTableName(runsTableName, hs.backend)

	var nextID int64
	idQuery := fmt.Sprintf("SELECT COALESCE(MAX(run_id), 0) + 1 FROM %s", runs)
	if err := hs.db.QueryRow(idQuery).Scan(&nextID); err != nil {
		return 0, fmt.Errorf("failed to allocate run id: %w", err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (run_id, start_time, config_params) VALUES (%s, %s, %s)",
		runs, placeholderFor(hs.backend, 1), placeholderFor(hs.backend, 2), placeholderFor(hs.backend, 3))
	if _, err := hs.db.Exec(insert, nextID, startTime.UTC().Format(storedTimeFormat), configParams); err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return nextID, nil
}

// EndRun finalizes a run with its end time, duration and symbol total.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalSymbols int) error {
	if hs.db == nil {
		return nil
	}

	runs := quoteTableName(runsTableName, hs.backend)

	var startStr string
	sel := fmt.Sprintf("SELECT start_time FROM %s WHERE run_id = %s", runs, placeholderFor(hs.backend, 1))
	if err := hs.db.QueryRow(sel, runID).Scan(&startStr); err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	start, err := time.Parse(storedTimeFormat, startStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time for run %d: %w", runID, err)
	}

	update := fmt.Sprintf("UPDATE %s SET end_time = %s, run_duration_ms = %s, total_symbols = %s WHERE run_id = %s",
		runs, placeholderFor(hs.backend, 1), placeholderFor(hs.backend, 2),
		placeholderFor(hs.backend, 3), placeholderFor(hs.backend, 4))
	_, err = hs.db.Exec(update,
		endTime.UTC().Format(storedTimeFormat),
		endTime.Sub(start).Milliseconds(),
		totalSymbols,
		runID)
	if err != nil {
		return fmt.Errorf("failed to end run %d: %w", runID, err)
	}
	return nil
}

// RecordFeatureStats persists one row per feature report for a run.
func (hs *HistoryStoreImpl) RecordFeatureStats(runID int64, runTime time.Time, reports []schema.FeatureReport) error {
	if hs.db == nil || len(reports) == 0 {
		return nil
	}

	stats := quoteTableName(statsTableName, hs.backend)
	placeholders := make([]string, 10)
	for i := range placeholders {
		placeholders[i] = placeholderFor(hs.backend, i+1)
	}
	insert := fmt.Sprintf(`INSERT INTO %s
		(run_id, feature_id, run_time, functions, methods, classes, total, commits, churn, hotspot_score)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		stats, placeholders[0], placeholders[1], placeholders[2], placeholders[3], placeholders[4],
		placeholders[5], placeholders[6], placeholders[7], placeholders[8], placeholders[9])

	runTimeStr := runTime.UTC().Format(storedTimeFormat)
	for _, report := range reports {
		_, err := hs.db.Exec(insert, runID, report.ID, runTimeStr,
			report.Functions, report.Methods, report.Classes, report.Total,
			report.Commits, report.Churn, report.HotspotScore)
		if err != nil {
			return fmt.Errorf("failed to record stats for feature %s: %w", report.ID, err)
		}
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:  hs.backend,
		Location: hs.location,
	}
	if hs.db == nil {
		return status, nil
	}

	runs := quoteTableName(runsTableName, hs.backend)
	stats := quoteTableName(statsTableName, hs.backend)

	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to count runs: %w", err)
	}
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", stats)).Scan(&status.TotalStatsRows); err != nil {
		return status, fmt.Errorf("failed to count stats rows: %w", err)
	}
	if status.TotalRuns == 0 {
		return status, nil
	}

	var lastID int64
	var lastStartStr, oldestStartStr string
	boundsQuery := fmt.Sprintf("SELECT MAX(run_id), MAX(start_time), MIN(start_time) FROM %s", runs)
	if err := hs.db.QueryRow(boundsQuery).Scan(&lastID, &lastStartStr, &oldestStartStr); err != nil {
		return status, fmt.Errorf("failed to get run bounds: %w", err)
	}
	status.LastRunID = &lastID
	if last, err := time.Parse(storedTimeFormat, lastStartStr); err == nil {
		status.LastRunTime = &last
	}
	if oldest, err := time.Parse(storedTimeFormat, oldestStartStr); err == nil {
		status.OldestRunTime = &oldest
	}
	return status, nil
}

// GetAllRuns returns every persisted run, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	runs := quoteTableName(runsTableName, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, total_symbols, config_params
		FROM %s ORDER BY run_id ASC`, runs)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		var startStr string
		var endStr sql.NullString
		var durationMS, totalSymbols sql.NullInt64
		var configParams sql.NullString

		if err := rows.Scan(&rec.RunID, &startStr, &endStr, &durationMS, &totalSymbols, &configParams); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if rec.StartTime, err = time.Parse(storedTimeFormat, startStr); err != nil {
			return nil, fmt.Errorf("failed to parse start time %q: %w", startStr, err)
		}
		if endStr.Valid {
			if end, err := time.Parse(storedTimeFormat, endStr.String); err == nil {
				rec.EndTime = &end
			}
		}
		if durationMS.Valid {
			rec.RunDurationMS = &durationMS.Int64
		}
		if totalSymbols.Valid {
			rec.TotalSymbols = &totalSymbols.Int64
		}
		if configParams.Valid {
			rec.ConfigParams = &configParams.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAllFeatureStats returns every persisted feature aggregate, oldest run
// first.
func (hs *HistoryStoreImpl) GetAllFeatureStats() ([]schema.FeatureStatsRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	stats := quoteTableName(statsTableName, hs.backend)
	query := fmt.Sprintf(`SELECT run_id, feature_id, run_time, functions, methods, classes, total, commits, churn, hotspot_score
		FROM %s ORDER BY run_id ASC, feature_id ASC`, stats)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feature stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.FeatureStatsRecord
	for rows.Next() {
		var rec schema.FeatureStatsRecord
		var runTimeStr string
		if err := rows.Scan(&rec.RunID, &rec.FeatureID, &runTimeStr,
			&rec.Functions, &rec.Methods, &rec.Classes, &rec.Total,
			&rec.Commits, &rec.Churn, &rec.HotspotScore); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		if rec.RunTime, err = time.Parse(storedTimeFormat, runTimeStr); err != nil {
			return nil, fmt.Errorf("failed to parse run time %q: %w", runTimeStr, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying DB connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
