// Package usecase contains the business logic of the application.
package usecase

import (
	"strings"

	"github.com/google/go-github/v62/github"

	"github.com/quay-qe/github-changes/internal/domain"
	"github.com/quay-qe/github-changes/internal/gateway"
)

const shortSHALen = 7

// NormalizeCommit maps a raw API commit into a CommitRecord. It returns
// MalformedDataError when the SHA, author identity, or date is missing.
// The display message is the first line only; the full text is retained.
func NormalizeCommit(raw *github.RepositoryCommit) (domain.CommitRecord, error) {
	sha := raw.GetSHA()
	if sha == "" {
		return domain.CommitRecord{}, &gateway.MalformedDataError{Field: "sha"}
	}

	// Prefer the GitHub login; fall back to the git author name.
	author := raw.GetAuthor().GetLogin()
	if author == "" {
		author = raw.GetCommit().GetAuthor().GetName()
	}
	if author == "" {
		return domain.CommitRecord{}, &gateway.MalformedDataError{Field: "author"}
	}

	date := raw.GetCommit().GetAuthor().GetDate()
	if date.Time.IsZero() {
		return domain.CommitRecord{}, &gateway.MalformedDataError{Field: "date"}
	}

	fullMessage := raw.GetCommit().GetMessage()
	message := strings.SplitN(fullMessage, "\n", 2)[0]

	short := sha
	if len(short) > shortSHALen {
		short = short[:shortSHALen]
	}

	return domain.CommitRecord{
		SHA:         sha,
		ShortSHA:    short,
		Author:      author,
		Timestamp:   date.Time.UTC(),
		Message:     message,
		FullMessage: fullMessage,
		Files:       len(raw.Files),
		Additions:   raw.GetStats().GetAdditions(),
		Deletions:   raw.GetStats().GetDeletions(),
		URL:         raw.GetHTMLURL(),
	}, nil
}

// NormalizePullRequest maps a raw API pull request into a PullRequestRecord.
// An open PR flagged as draft gets the draft state.
func NormalizePullRequest(raw *github.PullRequest) (domain.PullRequestRecord, error) {
	if raw.GetNumber() == 0 {
		return domain.PullRequestRecord{}, &gateway.MalformedDataError{Field: "number"}
	}

	state := domain.PRState(raw.GetState())
	if state == domain.PROpen && raw.GetDraft() {
		state = domain.PRDraft
	}

	author := raw.GetUser().GetLogin()
	if author == "" {
		author = "Unknown"
	}

	return domain.PullRequestRecord{
		Number:         raw.GetNumber(),
		Title:          raw.GetTitle(),
		State:          state,
		Author:         author,
		Body:           raw.GetBody(),
		UpdatedAt:      raw.GetUpdatedAt().Time.UTC(),
		SourceBranch:   raw.GetHead().GetRef(),
		TargetBranch:   raw.GetBase().GetRef(),
		Comments:       raw.GetComments(),
		ReviewComments: raw.GetReviewComments(),
		Files:          raw.GetChangedFiles(),
		Additions:      raw.GetAdditions(),
		Deletions:      raw.GetDeletions(),
		URL:            raw.GetHTMLURL(),
	}, nil
}

// NormalizeBranch maps a raw API branch into a BranchInfo.
func NormalizeBranch(raw *github.Branch) domain.BranchInfo {
	sha := raw.GetCommit().GetSHA()
	if len(sha) > shortSHALen {
		sha = sha[:shortSHALen]
	}
	return domain.BranchInfo{
		Name:       raw.GetName(),
		Protected:  raw.GetProtected(),
		LastCommit: sha,
	}
}
