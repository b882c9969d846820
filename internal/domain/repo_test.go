package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRepoName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain owner/repo", input: "quay/quay", expected: "quay/quay"},
		{name: "github.com prefix", input: "github.com/quay/quay", expected: "quay/quay"},
		{name: "https URL", input: "https://github.com/quay/quay", expected: "quay/quay"},
		{name: "http URL", input: "http://github.com/quay/quay", expected: "quay/quay"},
		{name: "trailing .git", input: "https://github.com/quay/quay.git", expected: "quay/quay"},
		{name: "trailing slash", input: "github.com/quay/quay/", expected: "quay/quay"},
		{name: "trailing .git and slash", input: "quay/quay.git/", expected: "quay/quay"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeRepoName(tc.input))
		})
	}
}

func TestSplitRepoName(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedOwner string
		expectedRepo  string
		expectError   bool
	}{
		{name: "valid", input: "https://github.com/quay/quay", expectedOwner: "quay", expectedRepo: "quay"},
		{name: "missing repo", input: "quay", expectError: true},
		{name: "empty owner", input: "/quay", expectError: true},
		{name: "too many segments", input: "a/b/c", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := SplitRepoName(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedOwner, owner)
			assert.Equal(t, tc.expectedRepo, repo)
		})
	}
}

func TestSplitCompareRef(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		expectedBase string
		expectedHead string
		expectError  bool
	}{
		{name: "two dots", input: "main..feature", expectedBase: "main", expectedHead: "feature"},
		{name: "three dots", input: "main...feature", expectedBase: "main", expectedHead: "feature"},
		{name: "no separator", input: "main", expectError: true},
		{name: "empty head", input: "main..", expectError: true},
		{name: "empty base", input: "..feature", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, head, err := SplitCompareRef(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedBase, base)
			assert.Equal(t, tc.expectedHead, head)
		})
	}
}
