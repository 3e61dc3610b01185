package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

var _ = Describe("Step", func() {
	It("returns the wrapped error and prints the message", func() {
		var buf bytes.Buffer
		boom := errors.New("boom")

		err := cliui.Step(&buf, "Loading catalog", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring("Loading catalog"))
		Expect(buf.String()).To(HaveSuffix("\n"))
	})

	It("ends with a success mark when fn succeeds", func() {
		var buf bytes.Buffer

		Expect(cliui.Step(&buf, "Pushing", func() error { return nil })).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(cliui.SuccessMark + " Pushing"))
	})
})

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds below one second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses seconds with one decimal below a minute", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})

	DescribeTable("routine ages",
		func(d time.Duration, expected string) {
			Expect(cliui.FormatDuration(d)).To(Equal(expected))
		},
		Entry("minutes", 5*time.Minute+40*time.Second, "5m"),
		Entry("hours", 3*time.Hour+59*time.Minute, "3h"),
		Entry("days", 50*time.Hour, "2d"),
	)
})

var _ = Describe("SkillMarkdown", func() {
	It("renders facets, muscles and numbered instructions", func() {
		md := cliui.SkillMarkdown(skill.Skill{
			ID:           "ex:1",
			Name:         "Barbell Squat",
			Type:         skill.TypeExercise,
			Category:     skill.CategoryStrength,
			Difficulty:   skill.DifficultyIntermediate,
			Muscles:      []string{"quadriceps", "glutes"},
			Equipment:    "Barbell",
			Instructions: []string{"Set the bar.", "Squat down."},
		})

		Expect(md).To(HavePrefix("# Barbell Squat\n"))
		Expect(md).To(ContainSubstring("| exercise | Strength | Intermediate | Barbell |"))
		Expect(md).To(ContainSubstring("**Muscles:** quadriceps, glutes"))
		Expect(md).To(ContainSubstring("1. Set the bar.\n2. Squat down.\n"))
	})

	It("omits empty sections", func() {
		md := cliui.SkillMarkdown(skill.Skill{ID: "yoga:3", Name: "Mountain", Type: skill.TypeYoga})
		Expect(md).NotTo(ContainSubstring("Muscles"))
		Expect(md).NotTo(ContainSubstring("Instructions"))
	})
})

var _ = Describe("SkillLine", func() {
	It("includes the name and id", func() {
		line := cliui.SkillLine(skill.Skill{ID: "yoga:12", Name: "Downward Dog", Type: skill.TypeYoga})
		Expect(line).To(ContainSubstring("Downward Dog"))
		Expect(line).To(ContainSubstring("yoga:12"))
	})
})
