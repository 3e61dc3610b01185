package routinescmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <reference>...",
		Short: "Append skills to a routine",
		Long: `Append skills to a routine. References are stored as given: canonical
ids, or exercise names resolved when the routine is shown. Items already in
the routine are left in place.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				id := routineID(args[0])
				w := cmd.OutOrStdout()

				for _, arg := range args[1:] {
					ref, err := collection.ParseUserRef(arg)
					if err != nil {
						return err
					}

					added, err := routines.AddItem(id, ref)
					if err != nil {
						return err
					}
					if added {
						fmt.Fprintf(w, "%s %s\n", addedStyle.Render("+"), ref)
					} else {
						fmt.Fprintf(w, "  %s %s\n", ref, dimStyle.Render("already in routine"))
					}
				}
				return nil
			})
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id> <reference>...",
		Aliases: []string{"rm"},
		Short:   "Remove skills from a routine",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				id := routineID(args[0])
				w := cmd.OutOrStdout()

				for _, arg := range args[1:] {
					ref, err := collection.ParseUserRef(arg)
					if err != nil {
						return err
					}

					removed, err := routines.RemoveItem(id, ref)
					if err != nil {
						return err
					}
					if removed {
						fmt.Fprintf(w, "- %s\n", ref)
					} else {
						fmt.Fprintf(w, "  %s %s\n", ref, dimStyle.Render("not in routine"))
					}
				}
				return nil
			})
		},
	}
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a routine",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				routine, err := routines.Rename(routineID(args[0]), joinArgs(args[1:]))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", idStyle.Render(routine.ID), routine.Name)
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				id := routineID(args[0])
				if err := routines.Delete(id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				return nil
			})
		},
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
