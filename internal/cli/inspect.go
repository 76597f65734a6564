package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchgraph/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing merged groups.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		list    bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse the groups of a simplified graph",
		Long: `Simplify a graph and browse the resulting groups interactively.

Groups are listed largest first. Press enter on a group to see which other
groups it conflicts with and which it is only joined to by stitches.
Use --list to print the table without the interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], list, noCache)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the group table and exit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, list, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Path:    input,
		Colors:  c.Config.Colors,
		Formats: []string{pipeline.FormatJSON},
	})
	if err != nil {
		return err
	}

	model, err := NewGroupListModel(result.Graph, result.Partition)
	if err != nil {
		return err
	}

	if list {
		fmt.Println(model.table(0, len(model.Rows), -1))
		printStats(result.Stats.Vertices, result.Stats.Groups, result.Simplify.Merges, result.CacheInfo.PartitionHit)
		return nil
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}
