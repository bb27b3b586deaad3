// Package cli implements the scout command line client. All commands talk
// to a running MateriaScout server through the SDK; the CLI itself never
// touches the upstream materials database.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/materiascout/materiascout/pkg/client"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	ServerAddr string
	APIKey     string
	Output     string
	Timeout    time.Duration
	NoColor    bool
}

// newClient builds the SDK client from the global flags.
func (o *RootOptions) newClient() (*client.Client, error) {
	return client.NewClient(o.ServerAddr, o.APIKey,
		client.WithUserAgent(fmt.Sprintf("scout-cli/%s", Version)))
}

// NewRootCommand creates the scout root command with all global flags and
// subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "scout",
		Short: "MateriaScout CLI, a natural-language front end for the Materials Project",
		Long: "scout queries the MateriaScout server: type a question mentioning element\n" +
			"names, symbols, or formulas and get back matching materials with the\n" +
			"properties you asked for.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ServerAddr, "server", "http://localhost:8080", "MateriaScout server address")
	pf.StringVar(&opts.APIKey, "api-key", "", "Materials Project API key (overrides the server's key)")
	pf.StringVarP(&opts.Output, "output", "o", "table", "output format (table, json, csv)")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "request timeout")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newSearchCmd(opts),
		newExtractCmd(opts),
		newPropertiesCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI. Errors are printed by the caller (main).
func Execute() error {
	return NewRootCommand().Execute()
}
