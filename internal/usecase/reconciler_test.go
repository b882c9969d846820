package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quay-qe/github-changes/internal/domain"
)

func snapshotOf(branch string, shas ...string) domain.BranchSnapshot {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	commits := make([]domain.CommitRecord, 0, len(shas))
	for i, sha := range shas {
		c := commitAt(sha, now.Add(-time.Duration(i)*time.Hour))
		c.Files = 1
		c.Additions = 10
		c.Deletions = 5
		commits = append(commits, c)
	}
	return domain.BranchSnapshot{Branch: branch, Commits: commits}
}

func shasOf(commits []domain.CommitRecord) []string {
	shas := make([]string, 0, len(commits))
	for _, c := range commits {
		shas = append(shas, c.SHA)
	}
	return shas
}

func TestReconcile(t *testing.T) {
	testCases := []struct {
		name                string
		base                domain.BranchSnapshot
		compare             domain.BranchSnapshot
		expectedBaseOnly    []string
		expectedCompareOnly []string
		expectedCommon      []string
	}{
		{
			name:                "partial overlap",
			base:                snapshotOf("main", "A", "B", "C"),
			compare:             snapshotOf("feature", "B", "C", "D"),
			expectedBaseOnly:    []string{"A"},
			expectedCompareOnly: []string{"D"},
			expectedCommon:      []string{"B", "C"},
		},
		{
			name:                "identical snapshots",
			base:                snapshotOf("main", "A", "B"),
			compare:             snapshotOf("feature", "A", "B"),
			expectedBaseOnly:    nil,
			expectedCompareOnly: nil,
			expectedCommon:      []string{"A", "B"},
		},
		{
			name:                "no shared hashes",
			base:                snapshotOf("main", "A", "B"),
			compare:             snapshotOf("feature", "C", "D"),
			expectedBaseOnly:    []string{"A", "B"},
			expectedCompareOnly: []string{"C", "D"},
			expectedCommon:      nil,
		},
		{
			name:                "both empty",
			base:                snapshotOf("main"),
			compare:             snapshotOf("feature"),
			expectedBaseOnly:    nil,
			expectedCompareOnly: nil,
			expectedCommon:      nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Reconcile(tc.base, tc.compare)

			assert.Equal(t, domain.TimeFiltered, result.Strategy)
			assert.Equal(t, tc.expectedBaseOnly, sliceOrNil(shasOf(result.BaseOnly)))
			assert.Equal(t, tc.expectedCompareOnly, sliceOrNil(shasOf(result.CompareOnly)))
			assert.Equal(t, tc.expectedCommon, sliceOrNil(shasOf(result.Common)))

			// base_only and compare_only must be disjoint, and
			// base_only ∪ common must reproduce the base commit set.
			baseOnlySet := make(map[string]struct{})
			for _, sha := range shasOf(result.BaseOnly) {
				baseOnlySet[sha] = struct{}{}
			}
			for _, sha := range shasOf(result.CompareOnly) {
				_, overlap := baseOnlySet[sha]
				assert.False(t, overlap, "base_only and compare_only share %s", sha)
			}
			reunion := append(shasOf(result.BaseOnly), shasOf(result.Common)...)
			assert.ElementsMatch(t, shasOf(tc.base.Commits), reunion)
		})
	}
}

func TestReconcileCommonRecordsComeFromBase(t *testing.T) {
	base := snapshotOf("main", "A")
	base.Commits[0].Message = "from base"
	compare := snapshotOf("feature", "A")
	compare.Commits[0].Message = "from compare"

	result := Reconcile(base, compare)
	assert.Equal(t, "from base", result.Common[0].Message)
}

func TestReconcileStats(t *testing.T) {
	base := snapshotOf("main", "A", "B", "C")
	compare := snapshotOf("feature", "B", "C", "D")

	result := Reconcile(base, compare)

	assert.Equal(t, 3, result.BaseStats.Commits)
	assert.Equal(t, 1, result.BaseStats.UniqueCommits)
	assert.Equal(t, 3, result.BaseStats.Files)
	assert.Equal(t, 30, result.BaseStats.Additions)
	assert.Equal(t, 15, result.BaseStats.Deletions)
	assert.InDelta(t, 10.0, result.BaseStats.MeanAdditions, 0.001)
	assert.InDelta(t, 1.0, result.BaseStats.MedianFiles, 0.001)

	assert.Equal(t, 3, result.CompareStats.Commits)
	assert.Equal(t, 1, result.CompareStats.UniqueCommits)
}

func TestReconcileNative(t *testing.T) {
	base := domain.BranchSnapshot{Branch: "main"}
	compare := snapshotOf("feature", "X", "Y")

	result := ReconcileNative(base, compare, 2, 5)

	assert.Equal(t, domain.NativeRange, result.Strategy)
	assert.Equal(t, 2, result.AheadBy)
	assert.Equal(t, 5, result.BehindBy)
	assert.Equal(t, []string{"X", "Y"}, shasOf(result.CompareOnly))
	assert.Empty(t, result.BaseOnly)
	assert.Empty(t, result.Common)
	assert.Equal(t, 2, result.CompareStats.Commits)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)
	assert.Zero(t, s.Commits)
	assert.Zero(t, s.MeanAdditions)
	assert.Zero(t, s.MedianFiles)
}

func sliceOrNil(shas []string) []string {
	if len(shas) == 0 {
		return nil
	}
	return shas
}
