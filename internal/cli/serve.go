package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchgraph/internal/api"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		graphsDir string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simplification pipeline over HTTP",
		Long: `Serve the simplification pipeline over HTTP.

POST a graph to /api/v1/simplify, or GET /api/v1/graphs/{name} to simplify a
graph stored under --graphs-dir. The server shares the configured cache with
the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("graphs-dir") {
				graphsDir = c.Config.Server.GraphsDir
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := api.New(runner, api.Config{GraphsDir: graphsDir, Logger: c.Logger})
			printInfo("Listening on %s", addr)
			if graphsDir != "" {
				printDetail("Graphs: %s", graphsDir)
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServerAddr, "listen address")
	cmd.Flags().StringVar(&graphsDir, "graphs-dir", "", "directory served by /api/v1/graphs/{name}")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
