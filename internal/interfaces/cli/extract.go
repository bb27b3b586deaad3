package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExtractCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <query>",
		Short: "Show how a query would be interpreted, without searching",
		Long: "extract reports the element symbols and formulas recognized in the\n" +
			"query text and the search criteria they would produce.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, strings.Join(args, " "))
		},
	}
}

func runExtract(cmd *cobra.Command, opts *RootOptions, queryText string) error {
	c, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	res, err := c.Extract(ctx, queryText)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		return renderJSON(out, res)
	}

	fmt.Fprintf(out, "Elements: %s\n", strings.Join(res.Elements, ", "))
	fmt.Fprintf(out, "Criteria: %s\n", res.Criteria)
	fmt.Fprintf(out, "Chemical system: %s\n", res.ChemicalSystem)
	return nil
}
