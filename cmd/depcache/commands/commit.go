package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depcache/internal/ui/output"
	"go.trai.ch/depcache/internal/ui/style"
)

func (c *CLI) newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit [outputs...]",
		Short: "Record the current state of outputs and their inputs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			committed, err := c.app.Commit(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			out := output.New(w)
			for _, p := range committed {
				_, _ = fmt.Fprintf(w, "%s %s\n", output.Paint(out, style.Dot, style.Green), p)
			}
			return nil
		},
	}
}
