package schema

// Custom string types for type safety.
type (
	// SymbolKind represents the canonical kind of a symbol.
	SymbolKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// Status represents the activity status of a feature across two windows.
	Status string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All canonical symbol kinds.
const (
	FunctionKind SymbolKind = "function"
	MethodKind   SymbolKind = "method"
	ClassKind    SymbolKind = "class"
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	MarkdownOut OutputMode = "md"
	CSVOut      OutputMode = "csv"
	JSONOut     OutputMode = "json"
)

// All status supported.
const (
	NewStatus     Status = "new"
	ActiveStatus  Status = "active"
	QuietStatus   Status = "quiet"
	UnknownStatus Status = "unknown"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// The synthetic catch-all bucket for symbols and churn matching no rule.
const (
	UncategorizedID   = "uncategorized"
	UncategorizedName = "Uncategorized"
	UnknownCategory   = "Unknown"
)

// ValidSymbolKinds lists all valid symbol kinds.
var ValidSymbolKinds = map[SymbolKind]struct{}{
	FunctionKind: {},
	MethodKind:   {},
	ClassKind:    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	MarkdownOut: {},
	CSVOut:      {},
	JSONOut:     {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
