package domain

import (
	"fmt"
	"strings"
)

// NormalizeRepoName reduces any accepted repository identifier to the
// canonical "owner/repo" form. Accepted inputs: owner/repo,
// github.com/owner/repo, and full http(s) URLs, with an optional trailing
// ".git" or slash.
func NormalizeRepoName(repo string) string {
	repo = strings.TrimPrefix(repo, "https://")
	repo = strings.TrimPrefix(repo, "http://")
	repo = strings.TrimPrefix(repo, "github.com/")
	repo = strings.TrimSuffix(repo, "/")
	repo = strings.TrimSuffix(repo, ".git")
	return repo
}

// SplitCompareRef splits a "base..head" (or "base...head") reference pair.
func SplitCompareRef(ref string) (base, head string, err error) {
	sep := ".."
	if strings.Contains(ref, "...") {
		sep = "..."
	}
	parts := strings.SplitN(ref, sep, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid comparison reference %q: expected base..head", ref)
	}
	return parts[0], parts[1], nil
}

// SplitRepoName splits a normalized identifier into owner and repository.
func SplitRepoName(repo string) (owner, name string, err error) {
	normalized := NormalizeRepoName(repo)
	parts := strings.Split(normalized, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository identifier %q: expected owner/repo", repo)
	}
	return parts[0], parts[1], nil
}
