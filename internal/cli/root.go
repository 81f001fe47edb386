// Package cli implements the shelters operator command: payload validation
// and command-line queries through the same engine and renderer the listing
// page runs.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/shelter-directory/internal/adapter/datasource"
	"github.com/couchcryptid/shelter-directory/internal/config"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Data    string

	cfg *config.Config
}

// NewRootCommand creates the root command for the shelters CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "shelters",
		Short: "Civil-defense shelter directory tools",
		Long:  "Validate the facility collection and query it the way the listing page does.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if !cmd.Flags().Changed("data") {
				opts.Data = cfg.DataSource
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Data, "data", "", "collection location: path, http(s) URL or s3://bucket/key (default $DATA_SOURCE)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

// logger writes diagnostics to stderr so they never mix with command output.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// load resolves the data location and loads the store from it.
func (o *RootOptions) load(ctx context.Context, logger *slog.Logger) (*store.Store, error) {
	var sourceOpts datasource.Options
	if o.cfg != nil {
		sourceOpts = datasource.OptionsFromConfig(o.cfg)
	}
	src, err := datasource.Open(ctx, o.Data, sourceOpts)
	if err != nil {
		return nil, err
	}
	s := store.Load(ctx, src)
	logger.Debug("record store loaded",
		"source", s.Source(),
		"records", s.Len(),
		"defects", s.DefectCount(),
		"duration", s.LoadDuration(),
	)
	return s, nil
}
