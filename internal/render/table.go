// Package render draws report tables and summary panels for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/quay-qe/github-changes/internal/domain"
)

const maxMessageWidth = 60

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	basePanel    = panelStyle(lipgloss.Color("12"))
	comparePanel = panelStyle(lipgloss.Color("10"))
	summaryPanel = panelStyle(lipgloss.Color("11"))
)

func panelStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// Renderer writes formatted report output.
type Renderer struct {
	out io.Writer
}

// New creates a Renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// CommitTable renders commits as a table, truncating the displayed rows to
// limit (<= 0 shows everything). The caption reports how many were hidden.
func (r *Renderer) CommitTable(title string, commits []domain.CommitRecord, limit int) {
	if len(commits) == 0 {
		fmt.Fprintln(r.out, warnStyle.Render("No changes found."))
		return
	}

	display := commits
	if limit > 0 && len(commits) > limit {
		display = commits[:limit]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(
			headerStyle.Render("Commit"),
			headerStyle.Render("Author"),
			headerStyle.Render("Date"),
			headerStyle.Render("Message"),
			headerStyle.Render("Files"),
			headerStyle.Render("+"),
			headerStyle.Render("-"),
		)
	for _, c := range display {
		t.Row(
			hashStyle.Render(c.ShortSHA),
			authorStyle.Render(c.Author),
			dimStyle.Render(c.Timestamp.Format("2006-01-02 15:04")),
			clip(c.Message, maxMessageWidth),
			strconv.Itoa(c.Files),
			addStyle.Render(strconv.Itoa(c.Additions)),
			delStyle.Render(strconv.Itoa(c.Deletions)),
		)
	}

	fmt.Fprintln(r.out, titleStyle.Render(title))
	fmt.Fprintln(r.out, t.Render())
	if limit > 0 && len(commits) > limit {
		fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("Showing %d of %d commits", limit, len(commits))))
	}
	fmt.Fprintln(r.out)
}

// Comparison renders the full comparison report: summary panels followed by
// the per-set commit tables. Statistics always reflect the full filtered
// sets, regardless of the display limit.
func (r *Renderer) Comparison(result domain.ComparisonResult, days, limit int) {
	base := result.Base.Branch
	compare := result.Compare.Branch

	left := basePanel.Render(fmt.Sprintf("%s\n%s", titleStyle.Render(base), statsBody(result.BaseStats)))
	right := comparePanel.Render(fmt.Sprintf("%s\n%s", titleStyle.Render(compare), statsBody(result.CompareStats)))
	fmt.Fprintln(r.out, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))

	var summary string
	switch result.Strategy {
	case domain.NativeRange:
		summary = fmt.Sprintf(
			"%s\nRange: %s...%s\nAhead by: %d\nBehind by: %d",
			titleStyle.Render("Comparison Summary"),
			base, compare, result.AheadBy, result.BehindBy,
		)
	default:
		summary = fmt.Sprintf(
			"%s\nTime Period: last %d days\nCommon commits: %d\nBranch divergence:\n  %s unique: %d\n  %s unique: %d",
			titleStyle.Render("Comparison Summary"),
			days, len(result.Common),
			base, len(result.BaseOnly),
			compare, len(result.CompareOnly),
		)
	}
	fmt.Fprintln(r.out, summaryPanel.Render(summary))
	fmt.Fprintln(r.out)

	if result.Strategy == domain.NativeRange {
		r.CommitTable(fmt.Sprintf("Commits in %s but not in %s", compare, base), result.CompareOnly, limit)
		return
	}
	if len(result.BaseOnly) > 0 {
		r.CommitTable(fmt.Sprintf("Commits unique to %s", base), result.BaseOnly, limit)
	}
	if len(result.CompareOnly) > 0 {
		r.CommitTable(fmt.Sprintf("Commits unique to %s", compare), result.CompareOnly, limit)
	}
	if len(result.Common) > 0 {
		r.CommitTable("Common commits in both branches", result.Common, limit)
	}
}

// PullRequestTable renders pull requests as a table with the same
// truncation rules as CommitTable.
func (r *Renderer) PullRequestTable(prs []domain.PullRequestRecord, limit int) {
	if len(prs) == 0 {
		fmt.Fprintln(r.out, warnStyle.Render("No pull requests found."))
		return
	}

	display := prs
	if limit > 0 && len(prs) > limit {
		display = prs[:limit]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(
			headerStyle.Render("#"),
			headerStyle.Render("Title"),
			headerStyle.Render("State"),
			headerStyle.Render("Author"),
			headerStyle.Render("Updated"),
			headerStyle.Render("Branch"),
			headerStyle.Render("Comments"),
			headerStyle.Render("+"),
			headerStyle.Render("-"),
		)
	for _, pr := range display {
		t.Row(
			hashStyle.Render(strconv.Itoa(pr.Number)),
			clip(pr.Title, maxMessageWidth),
			string(pr.State),
			authorStyle.Render(pr.Author),
			dimStyle.Render(pr.UpdatedAt.Format("2006-01-02 15:04")),
			fmt.Sprintf("%s → %s", pr.SourceBranch, pr.TargetBranch),
			strconv.Itoa(pr.Comments+pr.ReviewComments),
			addStyle.Render(strconv.Itoa(pr.Additions)),
			delStyle.Render(strconv.Itoa(pr.Deletions)),
		)
	}

	fmt.Fprintln(r.out, t.Render())
	if limit > 0 && len(prs) > limit {
		fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("Showing %d of %d pull requests", limit, len(prs))))
	}
}

// Branches renders the branch listing.
func (r *Renderer) Branches(branches []domain.BranchInfo) {
	if len(branches) == 0 {
		fmt.Fprintln(r.out, warnStyle.Render("No branches found."))
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(
			headerStyle.Render("Branch"),
			headerStyle.Render("Protected"),
			headerStyle.Render("Head"),
		)
	for _, b := range branches {
		t.Row(b.Name, strconv.FormatBool(b.Protected), hashStyle.Render(b.LastCommit))
	}
	fmt.Fprintln(r.out, t.Render())
}

func statsBody(s domain.BranchStats) string {
	return fmt.Sprintf(
		"Total commits: %d\nUnique commits: %d\nFiles changed: %d\nAdditions: %s\nDeletions: %s\nMean additions: %.1f\nMedian files: %.1f",
		s.Commits, s.UniqueCommits, s.Files,
		addStyle.Render(fmt.Sprintf("+%d", s.Additions)),
		delStyle.Render(fmt.Sprintf("-%d", s.Deletions)),
		s.MeanAdditions, s.MedianFiles,
	)
}

// clip shortens a string for tabular display.
func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width] + "..."
}
