package myskillscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

type listCommander struct {
	quiet       bool
	exerciseURL string
	yogaBase    string
}

func newListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List My Skills",
		Long: `List My Skills, resolved and sorted by name.

References that no longer resolve are reported after the list. Use --quiet
to print the stored references without contacting the upstream sources.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.NewEnv(cmd, config.FlagExerciseURL, config.FlagYogaBase)
			if err != nil {
				return err
			}
			defer env.Close()

			return cmder.run(cmd, env)
		},
	}

	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Print stored references only")
	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

func (c *listCommander) run(cmd *cobra.Command, env *app.Env) error {
	w := cmd.OutOrStdout()

	mySkills, err := env.MySkills()
	if err != nil {
		return err
	}

	refs, err := mySkills.Load()
	if err != nil {
		return err
	}

	if c.quiet {
		for _, ref := range refs {
			fmt.Fprintln(w, ref)
		}
		return nil
	}

	if len(refs) == 0 {
		fmt.Fprintln(w, "My Skills is empty. Add one with: rocksolid myskills add <reference>")
		return nil
	}

	raw := make([]string, 0, len(refs))
	for _, ref := range refs {
		raw = append(raw, ref.String())
	}

	result := env.Resolver().ResolveAll(cmd.Context(), raw)

	fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("My Skills"))
	for _, s := range result.Skills {
		fmt.Fprintf(w, "  %s\n", cliui.SkillLine(s))
	}
	fmt.Fprintln(w)

	for _, f := range result.Failures {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(f.Ref), dimStyle.Render(utils.Truncate(f.Err.Error(), 60)))
	}

	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d of %d skills resolved", result.Resolved, result.Total)))
	return nil
}
