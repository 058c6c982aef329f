package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/depcache/internal/app"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [outputs...]",
		Short: "Report output status whenever files below the project root change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("metrics-addr")
			w := cmd.OutOrStdout()

			g, ctx := errgroup.WithContext(cmd.Context())
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if addr != "" && c.metrics != nil {
				srv := c.serveMetrics(ctx, g, addr)
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "serving metrics on http://%s/metrics\n", srv.Addr)
			}

			g.Go(func() error {
				defer cancel()
				return c.app.Watch(ctx, args, func(statuses []app.OutputStatus) {
					_, _ = fmt.Fprintln(w, time.Now().Format(time.TimeOnly))
					printStatuses(w, statuses)
				})
			})
			return g.Wait()
		},
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while watching")
	return cmd
}

func (c *CLI) serveMetrics(ctx context.Context, g *errgroup.Group, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.metrics)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return srv
}
