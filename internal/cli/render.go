package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// renderCommand creates the render command, which draws the input graph
// with every vertex in its own group.
func (c *CLI) renderCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Draw a conflict graph without merging",
		Long: `Draw a conflict graph as-is, one node per vertex.

Conflict edges are drawn solid and stitch edges dashed. Use this to compare
the input with the output of 'simplify'. The drawing is written next to the
input as <name>.graph.<format> unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			opts.Path = args[0]
			opts.SkipSimplify = true
			return c.runRender(cmd.Context(), opts, flags.output, flags.noCache)
		},
	}

	flags.register(cmd, "output format(s): svg (default), dot, png, json (comma-separated)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", opts.Path)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d vertices, %d conflicts, %d stitches",
		result.Stats.Vertices, result.Stats.Conflicts, result.Stats.Stitches))

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Path,
		output:    output,
		suffix:    "graph",
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("Rendered %s", opts.Path)
	printStats(result.Stats.Vertices, result.Stats.Groups, 0, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
