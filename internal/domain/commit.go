// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// CommitRecord is the normalized form of a single commit as returned by the
// GitHub API. It is immutable once built; identity is the full SHA.
type CommitRecord struct {
	SHA         string    `json:"full_sha"`
	ShortSHA    string    `json:"sha"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"date"`
	Message     string    `json:"message"`
	FullMessage string    `json:"full_message"`
	Files       int       `json:"files"`
	Additions   int       `json:"additions"`
	Deletions   int       `json:"deletions"`
	URL         string    `json:"url,omitempty"`
}

// BranchSnapshot is the set of commits observed on one branch within a
// look-back window. Built fresh per request; never persisted.
type BranchSnapshot struct {
	Branch      string         `json:"branch"`
	Commits     []CommitRecord `json:"commits"` // newest first
	WindowStart time.Time      `json:"window_start"`
	WindowEnd   time.Time      `json:"window_end"`
}

// BranchStats summarizes one side of a comparison. Sums cover the full
// filtered commit set, never a truncated display subset.
type BranchStats struct {
	Commits       int     `json:"commits"`
	UniqueCommits int     `json:"unique_commits"`
	Files         int     `json:"files"`
	Additions     int     `json:"additions"`
	Deletions     int     `json:"deletions"`
	MeanAdditions float64 `json:"mean_additions"`
	MedianFiles   float64 `json:"median_files"`
}

// ComparisonStrategy tags how a ComparisonResult was produced.
type ComparisonStrategy string

const (
	// TimeFiltered means both branches were fetched independently within a
	// window and partitioned locally by commit hash.
	TimeFiltered ComparisonStrategy = "time_filtered"
	// NativeRange means the result trusts GitHub's own base...head
	// comparison (ahead/behind counts and the literal commit range).
	NativeRange ComparisonStrategy = "native_range"
)

// ComparisonResult is the outcome of reconciling two branches.
type ComparisonResult struct {
	Strategy ComparisonStrategy `json:"strategy"`

	Base    BranchSnapshot `json:"base"`
	Compare BranchSnapshot `json:"compare"`

	BaseOnly    []CommitRecord `json:"unique_to_base"`
	CompareOnly []CommitRecord `json:"unique_to_compare"`
	Common      []CommitRecord `json:"common_commits"`

	BaseStats    BranchStats `json:"base_stats"`
	CompareStats BranchStats `json:"compare_stats"`

	// AheadBy/BehindBy are populated only for the NativeRange strategy.
	AheadBy  int `json:"ahead_by,omitempty"`
	BehindBy int `json:"behind_by,omitempty"`
}

// PRState is the tri-state classification of a pull request.
type PRState string

const (
	PROpen   PRState = "open"
	PRClosed PRState = "closed"
	PRDraft  PRState = "draft"
)

// PullRequestRecord is the normalized form of a pull request.
type PullRequestRecord struct {
	Number         int       `json:"number"`
	Title          string    `json:"title"`
	State          PRState   `json:"state"`
	Author         string    `json:"author"`
	Body           string    `json:"body,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
	SourceBranch   string    `json:"source_branch"`
	TargetBranch   string    `json:"target_branch"`
	Comments       int       `json:"comments"`
	ReviewComments int       `json:"review_comments"`
	Files          int       `json:"files"`
	Additions      int       `json:"additions"`
	Deletions      int       `json:"deletions"`
	URL            string    `json:"url,omitempty"`
}

// BranchInfo is a lightweight branch listing entry.
type BranchInfo struct {
	Name       string `json:"name"`
	Protected  bool   `json:"protected"`
	LastCommit string `json:"last_commit"`
}

// User identifies the owner of an API token.
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
