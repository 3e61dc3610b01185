package skillcmder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

// newestRoutine is the --add-to value that picks the newest routine.
const newestRoutine = "newest"

type showCommander struct {
	jsonOut     bool
	save        bool
	addTo       string
	exerciseURL string
	yogaBase    string

	env    *app.Env
	logger *zap.Logger
}

func newShowCmd() *cobra.Command {
	cmder := &showCommander{}

	cmd := &cobra.Command{
		Use:   "show <reference>",
		Short: "Show one skill",
		Long: `Show one skill as a card or as JSON.

--save stores the skill in My Skills. --add-to appends it to a routine;
"--add-to newest" picks the newest routine and creates "My Routine" when
there is none. Status lines go to stderr.`,
		Example: `  rocksolid skill show ex:5
  rocksolid skill show "push up" --save
  rocksolid skill show yoga:12 --add-to newest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.env, err = app.NewEnv(cmd, config.FlagExerciseURL, config.FlagYogaBase)
			if err != nil {
				return err
			}
			defer cmder.env.Close()
			cmder.logger = cmder.env.Logger

			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Output the normalized skill as JSON")
	cmd.Flags().BoolVar(&cmder.save, "save", false, "Save the skill to My Skills")
	cmd.Flags().StringVar(&cmder.addTo, "add-to", "", `Add the skill to a routine id, or "newest"`)
	config.AddStringFlag(cmd, config.Flags, config.FlagExerciseURL, &cmder.exerciseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagYogaBase, &cmder.yogaBase)

	return cmd
}

func (c *showCommander) run(cmd *cobra.Command, raw string) error {
	ref, err := collection.ParseUserRef(raw)
	if err != nil {
		return err
	}

	c.logger.Debug("resolving skill", zap.String("ref", ref.String()))

	s, err := c.env.Resolver().Resolve(cmd.Context(), ref.String())
	if err != nil {
		if skill.IsNotFound(err) {
			return fmt.Errorf("no skill matches %q", raw)
		}
		return err
	}

	if c.jsonOut {
		err = writeJSON(cmd.OutOrStdout(), s)
	} else {
		err = writeCard(cmd.OutOrStdout(), s)
	}
	if err != nil {
		return err
	}

	if c.save {
		if err := c.saveSkill(cmd.ErrOrStderr(), s); err != nil {
			return err
		}
	}
	if c.addTo != "" {
		return c.addToRoutine(cmd.ErrOrStderr(), s)
	}
	return nil
}

func (c *showCommander) saveSkill(w io.Writer, s skill.Skill) error {
	mySkills, err := c.env.MySkills()
	if err != nil {
		return err
	}

	added, err := mySkills.Add(collection.Ref(s.ID))
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(w, "Saved %s to My Skills\n", s.Name)
	} else {
		fmt.Fprintf(w, "%s is already in My Skills\n", s.Name)
	}
	return nil
}

func (c *showCommander) addToRoutine(w io.Writer, s skill.Skill) error {
	routines, err := c.env.Routines()
	if err != nil {
		return err
	}
	ref := collection.Ref(s.ID)

	if c.addTo == newestRoutine {
		routine, created, added, err := routines.AddToNewest(ref)
		if err != nil {
			return err
		}
		switch {
		case created:
			fmt.Fprintf(w, "Created %q and added %s\n", routine.Name, s.Name)
		case added:
			fmt.Fprintf(w, "Added %s to %q\n", s.Name, routine.Name)
		default:
			fmt.Fprintf(w, "%s is already in %q\n", s.Name, routine.Name)
		}
		return nil
	}

	id := c.addTo
	if !strings.HasPrefix(id, collection.RoutineIDPrefix) {
		id = collection.RoutineIDPrefix + id
	}

	added, err := routines.AddItem(id, ref)
	if err != nil {
		return err
	}
	routine, err := routines.Get(id)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(w, "Added %s to %q\n", s.Name, routine.Name)
	} else {
		fmt.Fprintf(w, "%s is already in %q\n", s.Name, routine.Name)
	}
	return nil
}

func writeJSON(w io.Writer, s skill.Skill) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func writeCard(w io.Writer, s skill.Skill) error {
	rendered, err := cliui.RenderMarkdown(cliui.SkillMarkdown(s))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
