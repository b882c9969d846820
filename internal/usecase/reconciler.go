package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/quay-qe/github-changes/internal/domain"
)

// Reconcile partitions two time-filtered branch snapshots into base-only,
// compare-only, and common commit sets, keyed by full commit hash. Common
// records are taken from the base snapshot. Hash equality is the identity
// criterion: the same logical change rebased onto each branch under a new
// SHA counts as unique on both sides.
func Reconcile(base, compare domain.BranchSnapshot) domain.ComparisonResult {
	baseHashes := make(map[string]struct{}, len(base.Commits))
	for _, c := range base.Commits {
		baseHashes[c.SHA] = struct{}{}
	}
	compareHashes := make(map[string]struct{}, len(compare.Commits))
	for _, c := range compare.Commits {
		compareHashes[c.SHA] = struct{}{}
	}

	var baseOnly, common []domain.CommitRecord
	for _, c := range base.Commits {
		if _, ok := compareHashes[c.SHA]; ok {
			common = append(common, c)
		} else {
			baseOnly = append(baseOnly, c)
		}
	}
	var compareOnly []domain.CommitRecord
	for _, c := range compare.Commits {
		if _, ok := baseHashes[c.SHA]; !ok {
			compareOnly = append(compareOnly, c)
		}
	}

	return domain.ComparisonResult{
		Strategy:     domain.TimeFiltered,
		Base:         base,
		Compare:      compare,
		BaseOnly:     baseOnly,
		CompareOnly:  compareOnly,
		Common:       common,
		BaseStats:    Summarize(base.Commits, len(baseOnly)),
		CompareStats: Summarize(compare.Commits, len(compareOnly)),
	}
}

// ReconcileNative builds a comparison from GitHub's own base...head range:
// the upstream ahead/behind counts are trusted and the literal range commits
// become the compare-only set. Nothing is recomputed locally.
func ReconcileNative(base, compare domain.BranchSnapshot, aheadBy, behindBy int) domain.ComparisonResult {
	return domain.ComparisonResult{
		Strategy:     domain.NativeRange,
		Base:         base,
		Compare:      compare,
		CompareOnly:  compare.Commits,
		BaseStats:    Summarize(base.Commits, behindBy),
		CompareStats: Summarize(compare.Commits, aheadBy),
		AheadBy:      aheadBy,
		BehindBy:     behindBy,
	}
}

// Summarize computes per-branch totals over a full commit set. It must be
// fed the unfiltered set: display truncation never feeds back into stats.
func Summarize(commits []domain.CommitRecord, unique int) domain.BranchStats {
	s := domain.BranchStats{
		Commits:       len(commits),
		UniqueCommits: unique,
	}
	additions := make([]float64, 0, len(commits))
	files := make([]float64, 0, len(commits))
	for _, c := range commits {
		s.Files += c.Files
		s.Additions += c.Additions
		s.Deletions += c.Deletions
		additions = append(additions, float64(c.Additions))
		files = append(files, float64(c.Files))
	}
	// stats errors only on empty input; zero is the right answer there.
	if mean, err := stats.Mean(additions); err == nil {
		s.MeanAdditions = mean
	}
	if median, err := stats.Median(files); err == nil {
		s.MedianFiles = median
	}
	return s
}
