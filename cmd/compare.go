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

var compareCmd = &cobra.Command{
	Use:   "compare REPO BASE..HEAD",
	Short: "Compares two branches",
	Long: `Compares two branches of a repository.

With a look-back window (the default), both branches are fetched
independently within the window and partitioned locally into base-only,
compare-only, and common commit sets by commit hash.

With --days all, the comparison defers to GitHub's own base...head range:
ahead/behind counts and the literal list of commits in the range.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, repo, err := domain.SplitRepoName(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		base, head, err := domain.SplitCompareRef(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
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

		result, err := analyzer.CompareBranches(ctx, owner, repo, base, head, days)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to compare branches: %v\n", err)
			os.Exit(1)
		}

		render.New(os.Stdout).Comparison(result, days, limit)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().String("days", "30", "Look-back window in days, or \"all\" for a native range comparison")
	compareCmd.Flags().Int("limit", 20, "Maximum number of commits to display per set")
}
