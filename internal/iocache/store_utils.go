package iocache

import (
	"fmt"
	"regexp"

	"github.com/featlens/featlens/schema"
)

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName rejects identifiers that cannot be safely interpolated
// into DDL statements.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// placeholderFor returns the parameter placeholder for the backend at the
// given 1-based position.
func placeholderFor(backend schema.DatabaseBackend, pos int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", pos)
	}
	return "?"
}
