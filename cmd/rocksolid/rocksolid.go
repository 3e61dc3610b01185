// Package rocksolidcmder is the root of the rocksolid command tree.
package rocksolidcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/rocksolid/rocksolid/cmd/rocksolid/config"
	myskillscmder "github.com/rocksolid/rocksolid/cmd/rocksolid/myskills"
	routinescmder "github.com/rocksolid/rocksolid/cmd/rocksolid/routines"
	searchcmder "github.com/rocksolid/rocksolid/cmd/rocksolid/search"
	servecmder "github.com/rocksolid/rocksolid/cmd/rocksolid/serve"
	skillcmder "github.com/rocksolid/rocksolid/cmd/rocksolid/skill"
	versioncmder "github.com/rocksolid/rocksolid/cmd/version"
)

const rocksolidLongDesc string = `RockSolid brings exercises and yoga poses into one searchable skill catalog.

Find skills, keep the ones you like in My Skills, and build routines:
  rocksolid search squat --difficulty beginner
  rocksolid skill show ex:Barbell_Squat
  rocksolid myskills add yoga:12
  rocksolid routines create "Leg day"

Run the routine backend and skill API:
  rocksolid serve`

const rocksolidShortDesc string = "RockSolid - exercise and yoga skill catalog"

func NewRocksolidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rocksolid",
		Short:        rocksolidShortDesc,
		Long:         rocksolidLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .rocksolid/ config directory")

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(skillcmder.NewSkillCmd())
	cmd.AddCommand(myskillscmder.NewMySkillsCmd())
	cmd.AddCommand(routinescmder.NewRoutinesCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
