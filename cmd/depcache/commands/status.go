package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depcache/internal/app"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/ui/output"
	"go.trai.ch/depcache/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [outputs...]",
		Short: "Report whether outputs are up to date",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode, _ := cmd.Flags().GetBool("exit-code")

			statuses, err := c.app.Status(cmd.Context(), args)
			if err != nil {
				return err
			}
			fresh := printStatuses(cmd.OutOrStdout(), statuses)
			if exitCode && !fresh {
				return domain.ErrOutOfDate
			}
			return nil
		},
	}
	cmd.Flags().Bool("exit-code", false, "Exit with status 1 when any output is out of date")
	return cmd
}

// printStatuses writes one line per output and reports whether all of them are up to date.
func printStatuses(w io.Writer, statuses []app.OutputStatus) bool {
	out := output.New(w)
	fresh := true
	for _, s := range statuses {
		switch {
		case s.Err != nil:
			fresh = false
			_, _ = fmt.Fprintf(w, "%s %s: %v\n", output.Paint(out, style.Warning, style.Yellow), s.Path, s.Err)
		case s.UpToDate:
			_, _ = fmt.Fprintf(w, "%s %s\n", output.Paint(out, style.Check, style.Green), s.Path)
		default:
			fresh = false
			_, _ = fmt.Fprintf(w, "%s %s\n", output.Paint(out, style.Cross, style.Red), s.Path)
		}
	}
	return fresh
}
