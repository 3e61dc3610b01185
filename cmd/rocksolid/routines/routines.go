// Package routinescmder provides the `rocksolid routines` commands for
// building, sharing and syncing workout routines.
package routinescmder

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	addedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

const routinesLongDesc string = `Routines are named, ordered lists of exercises and yoga poses kept in
the rocksolid directory. They can be exported to JSON files, imported back,
and pushed to or pulled from a routine backend (rocksolid serve).

Routine ids look like routine:1718000000000; the routine: prefix may be
omitted on the command line.

Examples:
  rocksolid routines create "Leg day"
  rocksolid routines add routine:1718000000000 ex:1 "goblet squat" yoga:12
  rocksolid routines show 1718000000000
  rocksolid routines export --all -o routines.json
  rocksolid routines push 1718000000000 --api-target http://localhost:8081
  rocksolid routines pull`

// NewRoutinesCmd creates the parent routines command.
func NewRoutinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routines",
		Aliases: []string{"routine"},
		Short:   "Build, share and sync workout routines",
		Long:    routinesLongDesc,
	}

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newRenameCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newPushCmd())
	cmd.AddCommand(newPullCmd())

	return cmd
}

// routineID accepts a full routine id or its bare timestamp.
func routineID(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, collection.RoutineIDPrefix) {
		return arg
	}
	return collection.RoutineIDPrefix + arg
}

// withRoutines opens the environment and the routine collection for the
// duration of fn.
func withRoutines(cmd *cobra.Command, fn func(env *app.Env, routines *collection.Routines) error, flagKeys ...string) error {
	env, err := app.NewEnv(cmd, flagKeys...)
	if err != nil {
		return err
	}
	defer env.Close()

	routines, err := env.Routines()
	if err != nil {
		return err
	}
	return fn(env, routines)
}
