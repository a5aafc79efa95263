// Package cli provides the aerohub command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/aerohub/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type sessionKey struct{}

var errNoSession = errors.New("no session in command context")

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "aerohub",
		Short: "Browse and extend an airport catalog",
		Long: `aerohub is a client for a remote airport catalog.

It lists airports page by page with sorting and search, and adds new
airports through a validated form.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			sess, err := NewSession(cfg, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, sess))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./aerohub.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "catalog API root, e.g. http://localhost:8080/api/v1")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout for catalog calls")
	rootCmd.PersistentFlags().Int("page-size", 0, "rows per page (10, 20 or 50)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("page-size", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"10", "20", "50"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand(Version))
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newBrowseCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func sessionFrom(cmd *cobra.Command) (*Session, error) {
	if s, ok := cmd.Context().Value(sessionKey{}).(*Session); ok {
		return s, nil
	}
	return nil, errNoSession
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display aerohub version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "aerohub v%s (%s)\n", version, GitCommit)
		},
	}
}
