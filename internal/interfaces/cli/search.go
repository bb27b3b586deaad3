package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/materiascout/materiascout/pkg/client"
)

func newSearchCmd(opts *RootOptions) *cobra.Command {
	var (
		properties []string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search materials with a natural-language query",
		Long: "search runs the full pipeline: element extraction, criteria\n" +
			"construction, and the materials database lookup.\n\n" +
			"Examples:\n" +
			"  scout search \"stable compounds of iron and oxygen\"\n" +
			"  scout search \"properties of Fe2O3\" --properties \"Band Gap (eV)\",\"Stable?\"\n",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, strings.Join(args, " "), properties, maxResults)
		},
	}

	cmd.Flags().StringSliceVarP(&properties, "properties", "p", nil, "display properties to request (friendly or API names)")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum number of materials (0 = server default)")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *RootOptions, queryText string, properties []string, maxResults int) error {
	c, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	res, err := c.Query(ctx, client.QueryRequest{
		Query:      queryText,
		Properties: properties,
		MaxResults: maxResults,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		// JSON mode emits the whole result, message included.
		return renderJSON(out, res)
	}

	statusLine(out, opts.NoColor, !res.NoResults(), res.Message)
	if res.NoResults() {
		return nil
	}
	fmt.Fprintf(out, "Criteria: %s\n\n", res.Criteria)
	return renderTable(out, res.Table, opts.Output)
}
