package algo

import "testing"

// FuzzHotspotScore checks the definedness contract: positive inputs yield a
// positive score, anything else yields exactly 0.
func FuzzHotspotScore(f *testing.F) {
	f.Add(100, 4)
	f.Add(0, 0)
	f.Add(-1, 5)
	f.Add(1, 1)

	f.Fuzz(func(t *testing.T, churn, commits int) {
		got := HotspotScore(churn, commits)
		if churn <= 0 || commits <= 0 {
			if got != 0 {
				t.Errorf("HotspotScore(%d, %d) = %d, want 0 for undefined inputs", churn, commits, got)
			}
			return
		}
		if got < 0 {
			t.Errorf("HotspotScore(%d, %d) = %d, want non-negative", churn, commits, got)
		}
	})
}

// FuzzCoverageRate checks the rate always stays within [0, 100] whenever
// the inputs describe a real partition.
func FuzzCoverageRate(f *testing.F) {
	f.Add(3, 10)
	f.Add(0, 0)
	f.Add(10, 10)

	f.Fuzz(func(t *testing.T, uncategorized, total int) {
		if uncategorized < 0 || total < 0 || uncategorized > total {
			t.Skip()
		}
		got := CoverageRate(uncategorized, total)
		if got < 0 || got > 100 {
			t.Errorf("CoverageRate(%d, %d) = %f out of range", uncategorized, total, got)
		}
	})
}
