package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quay-qe/github-changes/internal/domain"
)

// AllTime is the sentinel look-back value meaning "no time filtering".
const AllTime = -1

// ParseWindow parses a look-back flag value: "all" (any case) disables
// filtering, otherwise the value must be a non-negative day count.
func ParseWindow(s string) (int, error) {
	if strings.EqualFold(s, "all") {
		return AllTime, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 0 {
		return 0, fmt.Errorf("invalid look-back window %q: expected a non-negative day count or \"all\"", s)
	}
	return days, nil
}

// WindowStart returns the inclusive lower bound of a look-back window, or
// the zero time when the window covers all time.
func WindowStart(days int, now time.Time) time.Time {
	if days == AllTime {
		return time.Time{}
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// FilterWindow keeps the commits whose timestamp falls within the trailing
// window of the given day count. Order is preserved (newest first).
// days == 0 yields an empty sequence; AllTime yields a copy of the input.
func FilterWindow(commits []domain.CommitRecord, days int, now time.Time) []domain.CommitRecord {
	filtered := make([]domain.CommitRecord, 0, len(commits))
	if days == AllTime {
		return append(filtered, commits...)
	}
	cutoff := WindowStart(days, now)
	for _, c := range commits {
		if !c.Timestamp.Before(cutoff) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
