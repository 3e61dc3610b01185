package myskillscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <reference>...",
		Aliases: []string{"rm"},
		Short:   "Remove skills from My Skills",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			mySkills, err := env.MySkills()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, arg := range args {
				ref, err := collection.ParseUserRef(arg)
				if err != nil {
					return err
				}

				removed, err := mySkills.Remove(ref)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(w, "- %s\n", ref)
				} else {
					fmt.Fprintf(w, "  %s %s\n", ref, dimStyle.Render("not in My Skills"))
				}
			}
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every skill from My Skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			mySkills, err := env.MySkills()
			if err != nil {
				return err
			}
			if err := mySkills.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "My Skills cleared.")
			return nil
		},
	}
}
