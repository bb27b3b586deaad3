package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPropertiesCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List the material properties available for queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProperties(cmd, opts)
		},
	}
}

func runProperties(cmd *cobra.Command, opts *RootOptions) error {
	c, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	props, err := c.Properties(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		return renderJSON(out, props)
	}
	for _, p := range props {
		fmt.Fprintln(out, p)
	}
	return nil
}
