package routinescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/cloudsync"
	"github.com/rocksolid/rocksolid/pkg/config"
)

func newPushCmd() *cobra.Command {
	var apiTarget string

	cmd := &cobra.Command{
		Use:   "push <id>",
		Short: "Upload a routine to the routine backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.NewEnv(cmd, config.FlagAPITarget)
			if err != nil {
				return err
			}
			defer env.Close()

			syncer, err := env.Syncer()
			if err != nil {
				return err
			}

			var created cloudsync.RemoteRoutine
			err = cliui.Step(cmd.ErrOrStderr(), "Pushing to "+env.CloudClient().Target(), func() error {
				created, err = syncer.Push(cmd.Context(), routineID(args[0]))
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s as %s\n", created.Name, idStyle.Render(created.ID))
			return nil
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &apiTarget)

	return cmd
}

func newPullCmd() *cobra.Command {
	var apiTarget string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Import every routine from the routine backend",
		Long: `Import every routine stored on the routine backend.

Remote routines whose name and items match a local routine are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.NewEnv(cmd, config.FlagAPITarget)
			if err != nil {
				return err
			}
			defer env.Close()

			syncer, err := env.Syncer()
			if err != nil {
				return err
			}

			var result cloudsync.PullResult
			err = cliui.Step(cmd.ErrOrStderr(), "Pulling from "+env.CloudClient().Target(), func() error {
				result, err = syncer.Pull(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d of %d routines (%d skipped)\n",
				result.Imported, result.Total, result.Skipped)
			return nil
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &apiTarget)

	return cmd
}
