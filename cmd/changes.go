// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quay-qe/github-changes/internal/domain"
	"github.com/quay-qe/github-changes/internal/render"
	"github.com/quay-qe/github-changes/internal/usecase"
)

var changesCmd = &cobra.Command{
	Use:   "changes REPO [BRANCH]",
	Short: "Lists recent commits on one branch",
	Long: `Lists the commits on a branch within the look-back window, with
per-commit file and line-change counts. BRANCH defaults to main.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, repo, err := domain.SplitRepoName(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		branch := "main"
		if len(args) == 2 {
			branch = args[1]
		}

		daysStr, _ := cmd.Flags().GetString("days")
		days, err := usecase.ParseWindow(daysStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		limit, _ := cmd.Flags().GetInt("limit")

		analyzer, _, err := buildAnalyzer(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		snapshot, err := analyzer.BranchChanges(ctx, owner, repo, branch, days)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch changes: %v\n", err)
			os.Exit(1)
		}

		title := fmt.Sprintf("Recent commits in %s (%s/%s)", branch, owner, repo)
		if days != usecase.AllTime {
			title = fmt.Sprintf("%s - last %d days", title, days)
		}
		render.New(os.Stdout).CommitTable(title, snapshot.Commits, limit)
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().String("days", "30", "Look-back window in days, or \"all\"")
	changesCmd.Flags().Int("limit", 20, "Maximum number of commits to display")
}
