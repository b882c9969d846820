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
)

var branchesCmd = &cobra.Command{
	Use:   "branches REPO",
	Short: "Lists the repository's branches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		owner, repo, err := domain.SplitRepoName(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		analyzer, _, err := buildAnalyzer(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		branches, err := analyzer.Branches(ctx, owner, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch branches: %v\n", err)
			os.Exit(1)
		}

		render.New(os.Stdout).Branches(branches)
	},
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}
