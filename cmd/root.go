// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/quay-qe/github-changes/internal/gateway"
	"github.com/quay-qe/github-changes/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-changes",
	Short: "A CLI tool to report code changes from a GitHub repository.",
	Long: `github-changes lists recent commits, compares branches within a
look-back window, and reports pull requests for a GitHub repository.
It can also serve the same reports as a JSON web API.

REPO can be given as owner/repository, github.com/owner/repository,
or a full https:// URL.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("token", "", "GitHub personal access token (defaults to the GITHUB_TOKEN environment variable)")
}

// newLogger builds the command logger: discarded by default, stderr when
// --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// buildAnalyzer resolves the token, wires the gateway, and returns the
// analyzer used by the reporting commands.
func buildAnalyzer(cmd *cobra.Command) (*usecase.Analyzer, *log.Logger, error) {
	logger := newLogger(cmd)

	token, _ := cmd.InheritedFlags().GetString("token")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, nil, fmt.Errorf("GitHub token is required: pass --token or set GITHUB_TOKEN")
	}

	githubGateway, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAnalyzer(githubGateway, logger), logger, nil
}
