// Package commands implements the CLI commands for the depcache tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.trai.ch/depcache/internal/adapters/logger"
	"go.trai.ch/depcache/internal/adapters/progress"
	"go.trai.ch/depcache/internal/adapters/settings"
	"go.trai.ch/depcache/internal/app"
	"go.trai.ch/depcache/internal/build"
	"go.trai.ch/depcache/internal/core/domain"
)

// CLI represents the command line interface for depcache.
type CLI struct {
	app      Application
	settings *settings.Settings
	logger   *logger.Logger
	metrics  http.Handler
	progress *progress.Recorder
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Status(ctx context.Context, targets []string) ([]app.OutputStatus, error)
	Sign(ctx context.Context, targets []string, trap bool) ([]app.SignatureResult, error)
	Commit(ctx context.Context, targets []string) ([]string, error)
	Graph(ctx context.Context, target string) ([]domain.GraphRow, error)
	Watch(ctx context.Context, targets []string, onChange func([]app.OutputStatus)) error
	Clean(ctx context.Context) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithSettings lets the --db flag override the configured database.
func WithSettings(s *settings.Settings) Option {
	return func(c *CLI) { c.settings = s }
}

// WithLogger lets the --json and --debug flags reconfigure l.
func WithLogger(l *logger.Logger) Option {
	return func(c *CLI) { c.logger = l }
}

// WithMetrics sets the handler served by watch --metrics-addr.
func WithMetrics(h http.Handler) Option {
	return func(c *CLI) { c.metrics = h }
}

// WithProgress lets the --progress flag send per-output progress to stderr.
func WithProgress(p *progress.Recorder) Option {
	return func(c *CLI) { c.progress = p }
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depcache",
		Short:         "Incremental build dependency tracking backed by SQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("db", "", "Graph database: a SQLite path or a postgres:// URL")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs")
	rootCmd.PersistentFlags().Bool("progress", false, "Print per-output progress to stderr (default when stderr is a terminal)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}
	rootCmd.PersistentPreRun = c.applyGlobalFlags

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newSignCmd())
	rootCmd.AddCommand(c.newCommitCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	if c.settings != nil && flags.Changed("db") {
		dsn, _ := flags.GetString("db")
		c.settings.SetDSN(dsn)
	}
	if c.progress != nil && flags.Changed("progress") {
		if show, _ := flags.GetBool("progress"); show {
			c.progress.SetOutput(cmd.ErrOrStderr())
		} else {
			c.progress.SetOutput(io.Discard)
		}
	}
	if c.logger == nil {
		return
	}
	if flags.Changed("json") {
		asJSON, _ := flags.GetBool("json")
		c.logger.SetJSON(asJSON)
	}
	if debug, _ := flags.GetBool("debug"); debug {
		c.logger.SetDebug(true)
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
