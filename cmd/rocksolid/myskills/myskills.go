// Package myskillscmder provides the `rocksolid myskills` commands for
// managing the My Skills collection.
package myskillscmder

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	addedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// NewMySkillsCmd creates the parent myskills command.
func NewMySkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "myskills",
		Aliases: []string{"my"},
		Short:   "Manage your saved skills",
		Long: `My Skills is a personal set of exercises and yoga poses, stored as
references under the rocksolid directory and resolved against the upstream
sources when listed.

Examples:
  rocksolid myskills add ex:45 yoga:12
  rocksolid myskills list
  rocksolid myskills remove ex:45
  rocksolid myskills export -o my-skills.json
  rocksolid myskills import my-skills.json`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())

	return cmd
}
