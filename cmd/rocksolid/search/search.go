// Package searchcmder provides the search command over the skill catalog.
package searchcmder

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/config"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	queryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	rankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type searchCommander struct {
	input       apisearch.Input
	limit       uint
	quiet       bool
	interactive bool
	exerciseURL string
	yogaBase    string

	out    io.Writer
	errOut io.Writer
	env    *app.Env
	logger *zap.Logger
}

const searchLongDesc string = `Search the skill catalog.

The catalog combines the exercise catalog with yoga poses of every level.
Free text is matched fuzzily against name, muscles, equipment, category,
difficulty and type; facet flags filter the ranked matches exactly.

Without a query every skill matching the facets is listed by name.

Use --quiet to output only skill ids, one per line. This is useful for piping
into other commands like rocksolid myskills add.

Use --interactive to refine the query live and add skills to My Skills.

Examples:
  rocksolid search squat
  rocksolid search "hip opener" --type yoga
  rocksolid search --muscle legs --difficulty beginner
  rocksolid search --kind balance --limit 10
  rocksolid myskills add $(rocksolid search "push up" --quiet --limit 1)
  rocksolid search --interactive`

const searchShortDesc string = "Search exercises and yoga poses"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.input.Query = strings.Join(args, " ")
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()

			var err error
			cmder.env, err = app.NewEnv(cmd, config.FlagSearchLimit, config.FlagExerciseURL, config.FlagYogaBase)
			if err != nil {
				return err
			}
			defer cmder.env.Close()
			cmder.logger = cmder.env.Logger

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cmder.input.Type, "type", "", "Filter by type (exercise, yoga)")
	cmd.Flags().StringVar(&cmder.input.Category, "category", "", "Filter by category (Strength, Cardio, Stretching)")
	cmd.Flags().StringVar(&cmder.input.Difficulty, "difficulty", "", "Filter by difficulty (Beginner, Intermediate, Advanced, Unknown)")
	cmd.Flags().StringVar(&cmder.input.Muscle, "muscle", "", "Filter by muscle or muscle group (legs, core)")
	cmd.Flags().StringVar(&cmder.input.Kind, "kind", "", "Filter by kind (strength, flexibility, balance)")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only skill ids, one per line (for piping)")
	cmd.Flags().BoolVarP(&cmder.interactive, "interactive", "i", false, "Search interactively")
	config.AddUintFlag(cmd, config.Flags, config.FlagSearchLimit, &cmder.limit)
	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

func (c *searchCommander) run(ctx context.Context) error {
	cat := c.env.Catalog()

	err := cliui.Step(c.errOut, "Loading skill catalog", func() error {
		return cat.Build(ctx)
	})
	if err != nil {
		return fmt.Errorf("loading skill catalog: %w", err)
	}

	if failed := cat.Stats().FailedYogaLevels; len(failed) > 0 {
		fmt.Fprintf(c.errOut, "  %s\n", dimStyle.Render("yoga levels unavailable: "+strings.Join(failed, ", ")))
	}

	if c.interactive {
		mySkills, err := c.env.MySkills()
		if err != nil {
			return err
		}
		return runSearchTUI(ctx, cat, c.input, c.env.SearchLimit(), mySkills)
	}

	c.input.Limit = c.env.SearchLimit()
	output, err := c.env.Searcher().Search(ctx, c.input)
	if err != nil {
		return err
	}

	printOutput(c.out, output, c.quiet)
	return nil
}

func printOutput(w io.Writer, output *apisearch.Output, quiet bool) {
	if quiet {
		for _, s := range output.Skills {
			fmt.Fprintln(w, s.ID)
		}
		return
	}

	if output.Total == 0 {
		fmt.Fprintln(w, "No skills found.")
		return
	}

	if output.Query != "" {
		fmt.Fprintf(w, "\n%s %s\n\n",
			headerStyle.Render("Skills matching"),
			queryStyle.Render(fmt.Sprintf("%q", output.Query)),
		)
	} else {
		fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Skills"))
	}

	for i, s := range output.Skills {
		fmt.Fprintf(w, "  %s  %s\n", rankStyle.Render(fmt.Sprintf("%3d", i+1)), cliui.SkillLine(s))
	}

	fmt.Fprintln(w)
	if output.Truncated {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf(
			"Showing %d of %d skills. Refine the query or filters to see more.", output.Shown, output.Total)))
	} else {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d skills", output.Total)))
	}
}
