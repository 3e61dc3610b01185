package routinescmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty routine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				routine, err := routines.Create(joinArgs(args))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					addedStyle.Render("Created"), routine.Name, idStyle.Render(routine.ID))
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List routines, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				all, err := routines.Load()
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if quiet {
					for _, r := range all {
						fmt.Fprintln(w, r.ID)
					}
					return nil
				}

				if len(all) == 0 {
					fmt.Fprintln(w, "No routines yet. Create one with: rocksolid routines create <name>")
					return nil
				}

				fmt.Fprintf(w, "\n%s\n\n", headerStyle.Render("Routines"))
				now := time.Now()
				for _, r := range all {
					fmt.Fprintf(w, "  %s  %-30s %s\n",
						idStyle.Render(r.ID),
						utils.Truncate(r.Name, 30),
						dimStyle.Render(fmt.Sprintf("%d items · %s ago", len(r.Items), cliui.FormatDuration(now.Sub(r.CreatedAt)))),
					)
				}
				fmt.Fprintln(w)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print routine ids only")

	return cmd
}

type showCommander struct {
	exerciseURL string
	yogaBase    string
}

func newShowCmd() *cobra.Command {
	cmder := &showCommander{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a routine with its resolved skills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(env *app.Env, routines *collection.Routines) error {
				routine, err := routines.Get(routineID(args[0]))
				if err != nil {
					return err
				}
				return cmder.print(cmd, env, routine)
			}, config.FlagExerciseURL, config.FlagYogaBase)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

// print resolves items one at a time so the routine order is kept.
func (c *showCommander) print(cmd *cobra.Command, env *app.Env, routine collection.Routine) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s %s\n", headerStyle.Render(routine.Name), idStyle.Render(routine.ID))
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render("created "+routine.CreatedAt.Local().Format(time.DateTime)))

	if len(routine.Items) == 0 {
		fmt.Fprintln(w, "  This routine is empty.")
		return nil
	}

	for i, item := range routine.Items {
		s, err := env.Resolver().Resolve(cmd.Context(), item.String())
		switch {
		case err == nil:
			fmt.Fprintf(w, "  %2d. %s\n", i+1, cliui.SkillLine(s))
		case skill.IsNotFound(err):
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, item, dimStyle.Render("not found"))
		default:
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, item, dimStyle.Render(utils.Truncate(err.Error(), 60)))
		}
	}
	fmt.Fprintln(w)
	return nil
}
