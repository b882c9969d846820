// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quay-qe/github-changes/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the reports as a JSON web API",
	Long: `Starts an HTTP server exposing the same reports as JSON endpoints:
branch listing, single-branch changes, branch comparison, pull requests,
and token validation. The GitHub token is supplied per request, either as
a bearer token or in the JSON body.`,
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")

		// The server always logs to stderr; --verbose only affects the
		// per-request gateway logging.
		logger := log.New(os.Stderr, "", log.LstdFlags)

		server := web.NewServer(logger)
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		if err := server.Start(addr); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "0.0.0.0", "Host to bind the web server to")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the web server on")
}
