// Package schema has configs, models and global variables for all parts of featlens.
package schema

// RawSymbolEntry is a single structural entry as reported by the extractor,
// before normalization. Entries keep the extractor's traversal order.
type RawSymbolEntry struct {
	Name      string // Symbol name as reported by the extractor
	Path      string // File path relative to the scan root, as reported
	Line      int    // 1-based line number
	Kind      string // Extractor-reported kind (function, method, class, constant, ...)
	Scope     string // Enclosing scope name, if any
	ScopeKind string // Kind of the enclosing scope, if any
	Pattern   string // Raw search pattern with line anchors, if any
}

// CanonicalSymbol is a normalized symbol with its feature attribution.
// The feature fields are set exactly once by the classifier; everything
// else is fixed at normalization time.
type CanonicalSymbol struct {
	Name        string     `json:"name"`
	Kind        SymbolKind `json:"kind"`
	Path        string     `json:"path"` // Forward slashes with a leading slash, relative to the scan root
	Line        int        `json:"line"`
	Scope       string     `json:"scope,omitempty"`
	Signature   string     `json:"signature,omitempty"`
	FeatureID   string     `json:"feature_id"`
	FeatureName string     `json:"feature_name"`
}

// RawChurnRecord is the per-file change summary over one analysis window,
// folded from the version-control activity log.
type RawChurnRecord struct {
	Path      string `json:"path"` // Same leading-slash convention as CanonicalSymbol.Path
	Commits   int    `json:"commits"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Churn     int    `json:"churn"` // Additions + deletions
}
