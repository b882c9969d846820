// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/quay-qe/github-changes/internal/domain"
)

const (
	// perPage is the page size for all list endpoints.
	perPage = 100
	// maxPages caps pagination loops so a huge repository cannot turn one
	// report into thousands of API calls.
	maxPages = 10
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchCommits(ctx context.Context, owner, repo, branch string, since time.Time) ([]*github.RepositoryCommit, error)
	FetchCompare(ctx context.Context, owner, repo, base, head string) (*github.CommitsComparison, error)
	FetchBranches(ctx context.Context, owner, repo string) ([]*github.Branch, error)
	FetchPullRequests(ctx context.Context, owner, repo, base, state string) ([]*github.PullRequest, error)
	ValidateToken(ctx context.Context) (*domain.User, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// NewGitHubGateway builds a gateway authenticated with the given token. The
// transport detects secondary rate limits but is given a zero sleep budget,
// so limit responses surface to the caller as RateLimitError instead of
// blocking the request.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	if token == "" {
		return nil, &AuthError{Err: fmt.Errorf("no token provided")}
	}
	limitDetector, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(0, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit detector: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   limitDetector,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchCommits lists commits on a branch, optionally bounded by since, and
// hydrates each with a per-commit request so stats and files are populated
// (the list endpoint omits both).
func (g *GitHubGateway) FetchCommits(ctx context.Context, owner, repo, branch string, since time.Time) ([]*github.RepositoryCommit, error) {
	resource := fmt.Sprintf("%s/%s@%s", owner, repo, branch)
	g.logger.Printf("Fetching commits for %s...", resource)

	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	if !since.IsZero() {
		opts.Since = since
	}

	var all []*github.RepositoryCommit
	for page := 0; page < maxPages; page++ {
		commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapAPIError(err, resource)
		}
		all = append(all, commits...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of commits...")
	}

	for i, commit := range all {
		detailed, _, err := g.restClient.Repositories.GetCommit(ctx, owner, repo, commit.GetSHA(), nil)
		if err != nil {
			return nil, mapAPIError(err, fmt.Sprintf("commit %s in %s", commit.GetSHA(), resource))
		}
		all[i] = detailed
	}
	g.logger.Printf("Fetched %d commits for %s.", len(all), resource)
	return all, nil
}

// FetchCompare returns GitHub's native base...head comparison, paginating the
// embedded commit range.
func (g *GitHubGateway) FetchCompare(ctx context.Context, owner, repo, base, head string) (*github.CommitsComparison, error) {
	resource := fmt.Sprintf("%s/%s %s...%s", owner, repo, base, head)
	g.logger.Printf("Comparing %s...", resource)

	opts := &github.ListOptions{PerPage: perPage}
	var result *github.CommitsComparison
	for page := 0; page < maxPages; page++ {
		comparison, resp, err := g.restClient.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			return nil, mapAPIError(err, resource)
		}
		if result == nil {
			result = comparison
		} else {
			result.Commits = append(result.Commits, comparison.Commits...)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of the comparison range...")
	}
	return result, nil
}

// FetchBranches lists the repository's branches.
func (g *GitHubGateway) FetchBranches(ctx context.Context, owner, repo string) ([]*github.Branch, error) {
	resource := fmt.Sprintf("%s/%s", owner, repo)
	g.logger.Printf("Fetching branches for %s...", resource)

	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var all []*github.Branch
	for page := 0; page < maxPages; page++ {
		branches, resp, err := g.restClient.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapAPIError(err, resource)
		}
		all = append(all, branches...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// FetchPullRequests lists pull requests filtered by state and an optional
// target branch, then hydrates each with a per-PR request for the comment
// and diff stat fields the list endpoint omits.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, owner, repo, base, state string) ([]*github.PullRequest, error) {
	resource := fmt.Sprintf("%s/%s pull requests", owner, repo)
	g.logger.Printf("Fetching %s (state=%s)...", resource, state)

	opts := &github.PullRequestListOptions{
		State:       state,
		Base:        base,
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var all []*github.PullRequest
	for page := 0; page < maxPages; page++ {
		prs, resp, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapAPIError(err, resource)
		}
		all = append(all, prs...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of pull requests...")
	}

	for i, pr := range all {
		detailed, _, err := g.restClient.PullRequests.Get(ctx, owner, repo, pr.GetNumber())
		if err != nil {
			return nil, mapAPIError(err, fmt.Sprintf("pull request #%d in %s/%s", pr.GetNumber(), owner, repo))
		}
		all[i] = detailed
	}
	g.logger.Printf("Fetched %d pull requests.", len(all))
	return all, nil
}

// ValidateToken resolves the token's owner with a GraphQL viewer query.
func (g *GitHubGateway) ValidateToken(ctx context.Context) (*domain.User, error) {
	g.logger.Println("Validating token...")
	var q struct {
		Viewer struct {
			Login     githubv4.String
			Name      githubv4.String
			AvatarURL githubv4.URI `graphql:"avatarUrl"`
		}
	}
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return nil, &AuthError{Err: err}
	}
	user := &domain.User{
		Login: string(q.Viewer.Login),
		Name:  string(q.Viewer.Name),
	}
	if q.Viewer.AvatarURL.URL != nil {
		user.AvatarURL = q.Viewer.AvatarURL.String()
	}
	return user, nil
}
