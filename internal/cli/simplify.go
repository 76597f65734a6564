package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// runFlags are the flags shared by simplify and render.
type runFlags struct {
	output     string
	formatsStr string
	colors     int
	detailed   bool
	noCache    bool
	refresh    bool
}

func (f *runFlags) register(cmd *cobra.Command, formatsHelp string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&f.formatsStr, "format", "f", "", formatsHelp)
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label every group with its members (dot, svg, png)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options builds pipeline options from flags layered over the config file.
func (f *runFlags) options(cmd *cobra.Command, cfg Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:  cfg.Formats,
		Colors:   cfg.Colors,
		Detailed: cfg.Detailed,
		Refresh:  f.refresh,
	}
	if cmd.Flags().Changed("format") {
		formats, err := pipeline.ParseFormats(f.formatsStr)
		if err != nil {
			return opts, err
		}
		opts.Formats = formats
	}
	if cmd.Flags().Changed("colors") {
		opts.Colors = f.colors
	}
	if cmd.Flags().Changed("detailed") {
		opts.Detailed = f.detailed
	}
	return opts, nil
}

// simplifyCommand creates the simplify command.
func (c *CLI) simplifyCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "simplify [graph.json]",
		Short: "Merge sub-K4 patterns and write the partition",
		Long: `Merge every 4-clique minus one conflict edge into a single group.

The input is a conflict graph in JSON form. Edges with a non-negative weight
are conflicts, negative weights (or "stitch": true) are stitch candidates.
The partition is written next to the input as <name>.groups.<format> unless
-o is given.

Results are cached, so running the same graph twice skips the search.`,
		Example: `  stitchgraph simplify layer.json
  stitchgraph simplify layer.json -f json,svg -o out/layer
  stitchgraph simplify layer.json -f dot -o - | dot -Tpdf > layer.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, c.Config)
			if err != nil {
				return err
			}
			opts.Path = args[0]
			return c.runSimplify(cmd.Context(), opts, flags.output, flags.noCache)
		},
	}

	flags.register(cmd, "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().IntVar(&flags.colors, "colors", pipeline.DefaultColors, "number of colors the reduction must preserve (only 3 is supported)")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached partitions and recompute")

	return cmd
}

// runSimplify executes the pipeline and writes its artifacts.
func (c *CLI) runSimplify(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Simplifying %s...", opts.Path))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Simplification failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Merged %s into %d groups", opts.Path, result.Stats.Groups))

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Path,
		output:    output,
		suffix:    "groups",
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("Simplified %s", opts.Path)
	printStats(result.Stats.Vertices, result.Stats.Groups, result.Simplify.Merges, result.CacheInfo.PartitionHit)
	for _, p := range paths {
		printFile(p)
	}
	if result.Simplify.Merges > 0 {
		printNextStep("Browse the groups", fmt.Sprintf("%s inspect %s", appName, opts.Path))
	}
	return nil
}
