package myskillscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

type addCommander struct {
	exerciseURL string
	yogaBase    string
}

func newAddCmd() *cobra.Command {
	cmder := &addCommander{}

	cmd := &cobra.Command{
		Use:   "add <reference>...",
		Short: "Add skills to My Skills",
		Long: `Add one or more skills to My Skills.

Each reference is resolved first so that only existing skills are stored.
Names are resolved to their exercise id. Skills already saved are left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.NewEnv(cmd, config.FlagExerciseURL, config.FlagYogaBase)
			if err != nil {
				return err
			}
			defer env.Close()

			return cmder.run(cmd, env, args)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

func (c *addCommander) run(cmd *cobra.Command, env *app.Env, args []string) error {
	w := cmd.OutOrStdout()

	mySkills, err := env.MySkills()
	if err != nil {
		return err
	}

	for _, arg := range args {
		ref, err := collection.ParseUserRef(arg)
		if err != nil {
			return err
		}

		s, err := env.Resolver().Resolve(cmd.Context(), ref.String())
		if err != nil {
			if skill.IsNotFound(err) {
				return fmt.Errorf("no skill matches %q", arg)
			}
			return err
		}

		added, err := mySkills.Add(collection.Ref(s.ID))
		if err != nil {
			return err
		}

		if added {
			fmt.Fprintf(w, "%s %s %s\n", addedStyle.Render("+"), s.Name, dimStyle.Render(s.ID))
		} else {
			fmt.Fprintf(w, "  %s %s\n", s.Name, dimStyle.Render("already in My Skills"))
		}
	}

	return nil
}
