package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/sync/errgroup"

	"github.com/quay-qe/github-changes/internal/domain"
	"github.com/quay-qe/github-changes/internal/gateway"
)

// Analyzer is the use case for building branch and pull-request reports.
// It orchestrates fetching, normalization, filtering, and reconciliation.
type Analyzer struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		logger:  logger,
	}
}

// BranchChanges returns the commits on one branch within the look-back
// window, normalized and newest first.
func (a *Analyzer) BranchChanges(ctx context.Context, owner, repo, branch string, days int) (domain.BranchSnapshot, error) {
	return a.fetchSnapshot(ctx, owner, repo, branch, days, time.Now().UTC())
}

// CompareBranches reconciles two branches. With a window it fetches both
// branches independently (concurrently; the snapshots do not depend on each
// other) and partitions them locally. With days == AllTime it defers to
// GitHub's native base...head comparison instead.
func (a *Analyzer) CompareBranches(ctx context.Context, owner, repo, base, head string, days int) (domain.ComparisonResult, error) {
	if days == AllTime {
		return a.compareNative(ctx, owner, repo, base, head)
	}

	now := time.Now().UTC()
	var baseSnap, headSnap domain.BranchSnapshot

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		baseSnap, err = a.fetchSnapshot(egCtx, owner, repo, base, days, now)
		return err
	})
	eg.Go(func() error {
		var err error
		headSnap, err = a.fetchSnapshot(egCtx, owner, repo, head, days, now)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.ComparisonResult{}, err
	}

	return Reconcile(baseSnap, headSnap), nil
}

func (a *Analyzer) compareNative(ctx context.Context, owner, repo, base, head string) (domain.ComparisonResult, error) {
	comparison, err := a.fetcher.FetchCompare(ctx, owner, repo, base, head)
	if err != nil {
		return domain.ComparisonResult{}, err
	}

	rangeCommits := a.normalizeCommits(comparison.Commits)
	baseSnap := domain.BranchSnapshot{Branch: base}
	headSnap := domain.BranchSnapshot{Branch: head, Commits: rangeCommits}

	return ReconcileNative(baseSnap, headSnap, comparison.GetAheadBy(), comparison.GetBehindBy()), nil
}

// PullRequests lists pull requests filtered by state, optional target
// branch, look-back window (on updated_at), and an optional Jira-ID
// substring matched against title and body.
func (a *Analyzer) PullRequests(ctx context.Context, owner, repo, branch, state string, days int, jiraID string) ([]domain.PullRequestRecord, error) {
	raw, err := a.fetcher.FetchPullRequests(ctx, owner, repo, branch, state)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cutoff := WindowStart(days, now)
	needle := strings.ToLower(jiraID)

	records := make([]domain.PullRequestRecord, 0, len(raw))
	for _, pr := range raw {
		record, err := NormalizePullRequest(pr)
		if err != nil {
			a.logger.Printf("Warning: skipping pull request: %v", err)
			continue
		}
		if days != AllTime && record.UpdatedAt.Before(cutoff) {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(record.Title + "\n" + record.Body)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Branches lists the repository's branches.
func (a *Analyzer) Branches(ctx context.Context, owner, repo string) ([]domain.BranchInfo, error) {
	raw, err := a.fetcher.FetchBranches(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	branches := make([]domain.BranchInfo, 0, len(raw))
	for _, b := range raw {
		branches = append(branches, NormalizeBranch(b))
	}
	return branches, nil
}

// ValidateToken resolves the owner of the configured token.
func (a *Analyzer) ValidateToken(ctx context.Context) (*domain.User, error) {
	return a.fetcher.ValidateToken(ctx)
}

func (a *Analyzer) fetchSnapshot(ctx context.Context, owner, repo, branch string, days int, now time.Time) (domain.BranchSnapshot, error) {
	snapshot := domain.BranchSnapshot{
		Branch:      branch,
		Commits:     []domain.CommitRecord{},
		WindowStart: WindowStart(days, now),
		WindowEnd:   now,
	}
	if days == 0 {
		// A zero-day window is empty by definition; skip the network.
		return snapshot, nil
	}

	raw, err := a.fetcher.FetchCommits(ctx, owner, repo, branch, snapshot.WindowStart)
	if err != nil {
		return domain.BranchSnapshot{}, err
	}

	// The API already bounds the fetch with since; filtering again keeps the
	// window invariant independent of upstream behavior.
	snapshot.Commits = FilterWindow(a.normalizeCommits(raw), days, now)
	return snapshot, nil
}

// normalizeCommits maps raw commits, skipping malformed payloads with a
// warning: one bad record must not hide the rest of the listing.
func (a *Analyzer) normalizeCommits(raw []*github.RepositoryCommit) []domain.CommitRecord {
	records := make([]domain.CommitRecord, 0, len(raw))
	for _, rc := range raw {
		record, err := NormalizeCommit(rc)
		if err != nil {
			a.logger.Printf("Warning: skipping commit: %v", err)
			continue
		}
		records = append(records, record)
	}
	return records
}
