package algo

import (
	"sort"

	"github.com/featlens/featlens/schema"
)

// maxTopFiles caps the per-feature churn contributor list.
const maxTopFiles = 10

// RankReports orders feature reports for presentation and truncates to
// limit. Buckets with zero symbols and zero churn are dropped. Windowed runs
// rank by hotspot score where both sides define one, with a defined score
// always above an undefined one; ties and unwindowed runs fall back to total
// symbol count descending. The sort is stable so equal buckets keep their
// declared order.
func RankReports(reports []schema.FeatureReport, windowed bool, limit int) []schema.FeatureReport {
	kept := make([]schema.FeatureReport, 0, len(reports))
	for _, report := range reports {
		if report.Total == 0 && report.Churn == 0 {
			continue
		}
		kept = append(kept, report)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if windowed {
			aDefined, bDefined := a.HotspotScore > 0, b.HotspotScore > 0
			switch {
			case aDefined && bDefined:
				if a.HotspotScore != b.HotspotScore {
					return a.HotspotScore > b.HotspotScore
				}
				return a.Total > b.Total
			case aDefined:
				return true
			case bDefined:
				return false
			}
		}
		return a.Total > b.Total
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// TrimTopFiles sorts churn contributors by churn descending and keeps the
// largest ten. The sort is stable so equal-churn files keep their ingestion
// order, which makes reruns byte-identical.
func TrimTopFiles(files []schema.TopFile) []schema.TopFile {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Churn > files[j].Churn
	})
	if len(files) > maxTopFiles {
		files = files[:maxTopFiles]
	}
	return files
}
