package cliui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

var (
	NameStyle = lipgloss.NewStyle().Bold(true)
	IDStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	typeColors = map[skill.Type]lipgloss.Color{
		skill.TypeExercise: lipgloss.Color("39"),
		skill.TypeYoga:     lipgloss.Color("170"),
	}

	difficultyColors = map[skill.Difficulty]lipgloss.Color{
		skill.DifficultyBeginner:     lipgloss.Color("82"),
		skill.DifficultyIntermediate: lipgloss.Color("214"),
		skill.DifficultyAdvanced:     lipgloss.Color("196"),
	}
)

// TypeBadge renders the skill type in its family color.
func TypeBadge(t skill.Type) string {
	return badge(string(t), typeColors[t])
}

// DifficultyBadge renders a difficulty level, grey for Unknown.
func DifficultyBadge(d skill.Difficulty) string {
	return badge(string(d), difficultyColors[d])
}

func badge(text string, color lipgloss.Color) string {
	if color == "" {
		color = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// SkillLine renders a skill as a single list row.
func SkillLine(s skill.Skill) string {
	return fmt.Sprintf("%s  %s  %s · %s · %s",
		NameStyle.Render(s.Name),
		IDStyle.Render(s.ID),
		TypeBadge(s.Type),
		s.Category,
		DifficultyBadge(s.Difficulty),
	)
}

// SkillMarkdown renders a skill card as markdown for RenderMarkdown.
func SkillMarkdown(s skill.Skill) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	fmt.Fprintf(&b, "`%s`\n\n", s.ID)
	fmt.Fprintf(&b, "| Type | Category | Difficulty | Equipment |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n", s.Type, s.Category, s.Difficulty, s.Equipment)

	if len(s.Muscles) > 0 {
		fmt.Fprintf(&b, "**Muscles:** %s\n\n", strings.Join(s.Muscles, ", "))
	}

	if len(s.Instructions) > 0 {
		b.WriteString("## Instructions\n\n")
		for i, step := range s.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	return b.String()
}
