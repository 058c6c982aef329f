package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depcache/internal/ui/output"
	"go.trai.ch/depcache/internal/ui/style"
)

func (c *CLI) newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [outputs...]",
		Short: "Compute content signatures of outputs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trap, _ := cmd.Flags().GetBool("trap")
			trace, _ := cmd.Flags().GetBool("trace")

			results, err := c.app.Sign(cmd.Context(), args, trap)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			out := output.New(w)
			for _, r := range results {
				if r.Signature == "" {
					_, _ = fmt.Fprintf(w, "%s %s\n", output.Paint(out, style.Tilde, style.Slate), r.Path)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", output.Paint(out, r.Signature, style.Iris), r.Path)
				if !trace {
					continue
				}
				for _, line := range r.Trace {
					_, _ = fmt.Fprintf(w, "    %s\n", line)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("trap", false, "Log failing outputs and continue with an empty signature")
	cmd.Flags().Bool("trace", false, "Print the parts hashed into each signature")
	return cmd
}
