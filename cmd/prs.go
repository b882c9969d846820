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

var prsCmd = &cobra.Command{
	Use:   "prs REPO",
	Short: "Lists pull requests",
	Long: `Lists pull requests for a repository, with comment counts and diff
stats. Results can be filtered by state, target branch, look-back window
(on the last update time), and a Jira issue ID substring matched against
titles and bodies.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, repo, err := domain.SplitRepoName(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		state, _ := cmd.Flags().GetString("state")
		branch, _ := cmd.Flags().GetString("branch")
		jira, _ := cmd.Flags().GetString("jira")
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

		prs, err := analyzer.PullRequests(ctx, owner, repo, branch, state, days, jira)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch pull requests: %v\n", err)
			os.Exit(1)
		}

		render.New(os.Stdout).PullRequestTable(prs, limit)
	},
}

func init() {
	rootCmd.AddCommand(prsCmd)
	prsCmd.Flags().String("state", "open", "Pull request state filter: open, closed, or all")
	prsCmd.Flags().String("branch", "", "Only pull requests targeting this branch")
	prsCmd.Flags().String("days", "all", "Look-back window in days on the last update, or \"all\"")
	prsCmd.Flags().String("jira", "", "Only pull requests whose title or body contains this Jira issue ID")
	prsCmd.Flags().Int("limit", 20, "Maximum number of pull requests to display")
}
