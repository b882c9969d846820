package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quay-qe/github-changes/internal/domain"
)

func commitAt(sha string, ts time.Time) domain.CommitRecord {
	return domain.CommitRecord{SHA: sha, ShortSHA: sha, Timestamp: ts}
}

func TestFilterWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	commits := []domain.CommitRecord{
		commitAt("aaa", now.Add(-24*time.Hour)),
		commitAt("bbb", now.Add(-10*24*time.Hour)),
		commitAt("ccc", now.Add(-40*24*time.Hour)),
	}

	testCases := []struct {
		name     string
		days     int
		expected []string
	}{
		{name: "30 day window drops the oldest", days: 30, expected: []string{"aaa", "bbb"}},
		{name: "tight window keeps only the newest", days: 2, expected: []string{"aaa"}},
		{name: "zero days yields an empty sequence", days: 0, expected: []string{}},
		{name: "all time keeps everything", days: AllTime, expected: []string{"aaa", "bbb", "ccc"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := FilterWindow(commits, tc.days, now)

			got := make([]string, 0, len(filtered))
			for _, c := range filtered {
				got = append(got, c.SHA)
			}
			assert.Equal(t, tc.expected, got)

			// Order must be the input order and every survivor inside the window.
			if tc.days != AllTime {
				cutoff := WindowStart(tc.days, now)
				for _, c := range filtered {
					assert.False(t, c.Timestamp.Before(cutoff))
				}
			}
		})
	}
}

func TestFilterWindowBoundary(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	exactly := commitAt("edge", now.Add(-30*24*time.Hour))
	justOutside := commitAt("out", now.Add(-30*24*time.Hour-time.Second))

	filtered := FilterWindow([]domain.CommitRecord{exactly, justOutside}, 30, now)
	assert.Equal(t, []domain.CommitRecord{exactly}, filtered)
}

func TestFilterWindowDoesNotMutateInput(t *testing.T) {
	now := time.Now().UTC()
	commits := []domain.CommitRecord{commitAt("aaa", now.Add(-time.Hour))}
	filtered := FilterWindow(commits, AllTime, now)

	filtered[0].SHA = "changed"
	assert.Equal(t, "aaa", commits[0].SHA)
}

func TestParseWindow(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    int
		expectError bool
	}{
		{name: "plain days", input: "30", expected: 30},
		{name: "zero is allowed", input: "0", expected: 0},
		{name: "all disables filtering", input: "all", expected: AllTime},
		{name: "case insensitive", input: "ALL", expected: AllTime},
		{name: "negative rejected", input: "-3", expectError: true},
		{name: "garbage rejected", input: "soon", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := ParseWindow(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, days)
		})
	}
}
