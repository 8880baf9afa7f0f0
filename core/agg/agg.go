package agg

import (
	"github.com/featlens/featlens/core/algo"
	"github.com/featlens/featlens/schema"
)

// BucketSet owns the per-feature counters for a single run. Buckets are
// seeded from the configured rules so every declared feature appears in the
// output even when empty, and the catch-all bucket always exists.
type BucketSet struct {
	order   []string
	buckets map[string]*schema.FeatureReport
}

// NewBucketSet seeds one bucket per configured rule, in declared order,
// plus the uncategorized sentinel at the end.
func NewBucketSet(rules []schema.FeatureRule) *BucketSet {
	bs := &BucketSet{
		buckets: make(map[string]*schema.FeatureReport, len(rules)+1),
	}
	for _, rule := range rules {
		bs.seed(rule.ID, rule.Name, rule.Category)
	}
	bs.seed(schema.UncategorizedID, schema.UncategorizedName, schema.UnknownCategory)
	return bs
}

func (bs *BucketSet) seed(id, name, category string) {
	if _, ok := bs.buckets[id]; ok {
		return
	}
	bs.buckets[id] = &schema.FeatureReport{ID: id, Name: name, Category: category}
	bs.order = append(bs.order, id)
}

// AddSymbol increments the kind counter and total of the symbol's feature
// bucket. Symbols attributed to an unseeded feature get an Unknown-category
// bucket on demand, which keeps the fold total-preserving.
func (bs *BucketSet) AddSymbol(sym schema.CanonicalSymbol) {
	bucket := bs.bucketFor(sym.FeatureID, sym.FeatureName)
	switch sym.Kind {
	case schema.FunctionKind:
		bucket.Functions++
	case schema.MethodKind:
		bucket.Methods++
	case schema.ClassKind:
		bucket.Classes++
	}
	bucket.Total++
}

// AddChurn folds a churn record into the bucket for the given rule and
// tracks the file as a top-file candidate.
func (bs *BucketSet) AddChurn(rule schema.FeatureRule, rec schema.RawChurnRecord) {
	bucket := bs.bucketFor(rule.ID, rule.Name)
	bucket.Commits += rec.Commits
	bucket.Churn += rec.Churn
	bucket.TopFiles = append(bucket.TopFiles, schema.TopFile{
		Path:    rec.Path,
		Commits: rec.Commits,
		Churn:   rec.Churn,
	})
}

func (bs *BucketSet) bucketFor(id, name string) *schema.FeatureReport {
	if bucket, ok := bs.buckets[id]; ok {
		return bucket
	}
	bs.seed(id, name, schema.UnknownCategory)
	return bs.buckets[id]
}

// Reports returns the buckets in seeded order with hotspot scores computed
// and top-file candidate lists trimmed.
func (bs *BucketSet) Reports() []schema.FeatureReport {
	reports := make([]schema.FeatureReport, 0, len(bs.order))
	for _, id := range bs.order {
		bucket := *bs.buckets[id]
		bucket.HotspotScore = algo.HotspotScore(bucket.Churn, bucket.Commits)
		bucket.TopFiles = algo.TrimTopFiles(bucket.TopFiles)
		reports = append(reports, bucket)
	}
	return reports
}

// UncategorizedTotal returns the symbol count of the catch-all bucket.
func (bs *BucketSet) UncategorizedTotal() int {
	return bs.buckets[schema.UncategorizedID].Total
}

// SymbolTotal returns the symbol count across all buckets.
func (bs *BucketSet) SymbolTotal() int {
	total := 0
	for _, bucket := range bs.buckets {
		total += bucket.Total
	}
	return total
}
