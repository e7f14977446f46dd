package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/internal/server"
	"github.com/matzehuels/descendants/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive diagram and a JSON API over HTTP",
		Long: `Serve the family tree over HTTP.

  /                    interactive SVG page (?q= to search)
  /api/graph?q=        graph as JSON, with legend and match path
  /api/nodes/{id}?q=   one person's details and lineage
  /api/legend          category colours
  /render.{fmt}?q=     svg, png, pdf, json or dot download
  /healthz             liveness

The server stops gracefully on interrupt.`,
		Example: `  descendants serve --addr :8080
  descendants serve --cache-backend redis --redis localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context())
		},
	}
	addLayoutFlags(cmd)
	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(server.Config{
		Runner:  runner,
		Addr:    c.Config.Addr,
		Options: c.pipelineOptions(""),
		Logger:  c.Logger,
	})
	printInfo("Serving on http://%s", c.Config.Addr)
	return srv.Serve(ctx)
}

// addLayoutFlags registers the diagram spacing flags. Their values reach
// commands through the loaded config.
func addLayoutFlags(cmd *cobra.Command) {
	defaults := config.Default()
	f := cmd.Flags()
	f.Float64("column-width", defaults.ColumnWidth, "horizontal distance between generations")
	f.Float64("row-height", defaults.RowHeight, "vertical distance between rows")
}
