// Package skillcmder provides the `rocksolid skill` commands for looking up
// a single exercise or yoga pose.
package skillcmder

import "github.com/spf13/cobra"

// NewSkillCmd creates the parent skill command.
func NewSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Look up exercises and yoga poses by reference",
		Long: `Resolve a skill reference against the upstream sources.

A reference is a canonical id (ex:45, yoga:12), an exercise name
(exname:push up), a bare number read as an exercise id, or free text
read as an exercise name.

Examples:
  rocksolid skill show ex:45
  rocksolid skill show yoga:12
  rocksolid skill show "barbell squat"
  rocksolid skill show 45 --json`,
	}

	cmd.AddCommand(newShowCmd())

	return cmd
}
