package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <output>",
		Short: "List the inputs recorded at the last commit of an output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := c.app.Graph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "#\tINPUT\tMODIFIED\tOPTIONAL\tEXISTED")
			for _, r := range rows {
				modified := "-"
				if r.Edge.InLastModified != 0 {
					modified = time.Unix(0, r.Edge.InLastModified).UTC().Format(time.RFC3339)
				}
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%t\n",
					r.Edge.OrderIndex, r.Input.Path, modified, r.Edge.CanBeMissing, r.Edge.Existed)
			}
			return tw.Flush()
		},
	}
}
