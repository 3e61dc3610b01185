package search_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

type staticSource struct {
	skills []skill.Skill
	err    error
}

func (s staticSource) Skills() ([]skill.Skill, error) {
	return s.skills, s.err
}

func names(skills []skill.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

func exercise(id, name string, category skill.Category, difficulty skill.Difficulty, equipment string, muscles ...string) skill.Skill {
	return skill.Skill{
		ID:         "ex:" + id,
		Name:       name,
		Type:       skill.TypeExercise,
		Category:   category,
		Difficulty: difficulty,
		Muscles:    muscles,
		Equipment:  equipment,
	}
}

func pose(id, name string, difficulty skill.Difficulty, muscles ...string) skill.Skill {
	return skill.Skill{
		ID:         "yoga:" + id,
		Name:       name,
		Type:       skill.TypeYoga,
		Category:   skill.CategoryStretching,
		Difficulty: difficulty,
		Muscles:    muscles,
		Equipment:  "None",
	}
}

var _ = Describe("Engine", func() {
	var (
		catalog []skill.Skill
		engine  *search.Engine
	)

	BeforeEach(func() {
		catalog = []skill.Skill{
			exercise("1", "Squat", skill.CategoryStrength, skill.DifficultyBeginner, "Barbell", "quadriceps", "glutes"),
			exercise("2", "Rowing Machine", skill.CategoryCardio, skill.DifficultyIntermediate, "Machine", "lats"),
			exercise("3", "Bench Press", skill.CategoryStrength, skill.DifficultyIntermediate, "Barbell", "chest", "triceps"),
			exercise("4", "Air Bike", skill.CategoryCardio, skill.DifficultyBeginner, "Body Only", "quadriceps"),
			exercise("5", "Chest Fly", skill.CategoryStrength, skill.DifficultyAdvanced, "Dumbbell", "chest"),
			pose("12", "Downward Dog", skill.DifficultyBeginner, "hip flexors", "glutes"),
			pose("13", "Tree Pose", skill.DifficultyBeginner, "core", "feet"),
			pose("14", "Boat", skill.DifficultyIntermediate, "abdominals", "obliques"),
		}
		engine = search.NewEngine(staticSource{skills: catalog}, search.Config{})
	})

	Describe("empty query", func() {
		It("returns the cardio skills sorted by name for a cardio filter", func() {
			strengthAndCardio := catalog[:5]
			result := engine.Run(strengthAndCardio, "", search.Filters{Category: "cardio"}, 0)

			Expect(names(result.Skills)).To(Equal([]string{"Air Bike", "Rowing Machine"}))
			Expect(result.Total).To(Equal(2))
			Expect(result.Truncated).To(BeFalse())
		})

		It("returns the whole catalog by name then id", func() {
			result, err := engine.Search("", search.Filters{}, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(len(catalog)))
			Expect(result.Skills[0].Name).To(Equal("Air Bike"))
			Expect(result.Skills[len(result.Skills)-1].Name).To(Equal("Tree Pose"))
		})

		It("caps a source search at the given limit", func() {
			result, err := engine.Search("", search.Filters{Type: "yoga"}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(names(result.Skills)).To(Equal([]string{"Boat", "Downward Dog"}))
			Expect(result.Total).To(Equal(3))
			Expect(result.Truncated).To(BeTrue())
		})

		It("breaks name ties by id", func() {
			dupes := []skill.Skill{
				exercise("9", "Plank", skill.CategoryStrength, skill.DifficultyBeginner, "Body Only"),
				pose("2", "plank", skill.DifficultyBeginner),
				exercise("1", "Plank", skill.CategoryStrength, skill.DifficultyBeginner, "Body Only"),
			}
			result := engine.Run(dupes, "", search.Filters{}, 0)

			ids := []string{result.Skills[0].ID, result.Skills[1].ID, result.Skills[2].ID}
			Expect(ids).To(Equal([]string{"ex:1", "ex:9", "yoga:2"}))
		})
	})

	Describe("ranked query", func() {
		It("ranks a name match above a muscle match", func() {
			result := engine.Run(catalog, "chest", search.Filters{}, 0)

			Expect(names(result.Skills)).To(Equal([]string{"Chest Fly", "Bench Press"}))
		})

		It("ranks a muscle match above an equipment match", func() {
			skills := []skill.Skill{
				exercise("1", "Hold", skill.CategoryStrength, skill.DifficultyBeginner, "Cable Machine"),
				exercise("2", "Pull", skill.CategoryStrength, skill.DifficultyBeginner, "Band", "cable stabilizers"),
			}
			result := engine.Run(skills, "cable", search.Filters{}, 0)

			Expect(names(result.Skills)).To(Equal([]string{"Pull", "Hold"}))
		})

		It("matches type and difficulty fields", func() {
			result := engine.Run(catalog, "yoga", search.Filters{}, 0)
			Expect(names(result.Skills)).To(ConsistOf("Downward Dog", "Tree Pose", "Boat"))

			result = engine.Run(catalog, "advanced", search.Filters{}, 0)
			Expect(names(result.Skills)).To(Equal([]string{"Chest Fly"}))
		})

		It("tolerates typos", func() {
			result := engine.Run(catalog, "sqat", search.Filters{}, 0)
			Expect(names(result.Skills)).To(Equal([]string{"Squat"}))
		})

		It("requires every token to match something", func() {
			result := engine.Run(catalog, "bench zzzz", search.Filters{}, 0)
			Expect(result.Skills).To(BeEmpty())
		})

		It("drops matches below the threshold", func() {
			strict := search.NewEngine(staticSource{}, search.Config{Threshold: 0.6})
			result := strict.Run(catalog, "barbell", search.Filters{}, 0)
			Expect(result.Skills).To(BeEmpty())

			result = strict.Run(catalog, "squat", search.Filters{}, 0)
			Expect(names(result.Skills)).To(Equal([]string{"Squat"}))
		})

		It("applies filters after ranking", func() {
			result := engine.Run(catalog, "quadriceps", search.Filters{Category: "Cardio"}, 0)
			Expect(names(result.Skills)).To(Equal([]string{"Air Bike"}))
		})
	})

	Describe("display cap", func() {
		It("caps the shown skills and reports the total", func() {
			many := make([]skill.Skill, 0, 250)
			for i := 0; i < 250; i++ {
				many = append(many, exercise(fmt.Sprint(i), fmt.Sprintf("Drill %03d", i), skill.CategoryStrength, skill.DifficultyBeginner, "None"))
			}

			result := engine.Run(many, "", search.Filters{}, 0)
			Expect(result.Total).To(Equal(250))
			Expect(result.Shown).To(Equal(search.DefaultLimit))
			Expect(result.Skills).To(HaveLen(search.DefaultLimit))
			Expect(result.Truncated).To(BeTrue())
		})

		It("honors a per-call limit", func() {
			result := engine.Run(catalog, "", search.Filters{}, 2)
			Expect(result.Shown).To(Equal(2))
			Expect(result.Total).To(Equal(len(catalog)))
		})
	})

	It("surfaces source errors", func() {
		broken := search.NewEngine(staticSource{err: errors.New("catalog not built")}, search.Config{})
		_, err := broken.Search("", search.Filters{}, 0)
		Expect(err).To(MatchError("catalog not built"))
	})
})

var _ = Describe("Filters", func() {
	squat := exercise("1", "Squat", skill.CategoryStrength, skill.DifficultyBeginner, "Barbell", "quadriceps", "glutes")
	crunch := exercise("2", "Crunch", skill.CategoryStrength, skill.DifficultyBeginner, "Body Only", "rectus abdominis")
	tree := pose("13", "Tree Pose", skill.DifficultyBeginner, "core", "feet")
	handstand := exercise("3", "Handstand Push Up", skill.CategoryStrength, skill.DifficultyAdvanced, "Body Only", "shoulders")

	DescribeTable("Match",
		func(f search.Filters, s skill.Skill, expected bool) {
			Expect(f.Match(s)).To(Equal(expected))
		},
		Entry("no facets", search.Filters{}, squat, true),
		Entry("type is case-insensitive", search.Filters{Type: "YOGA"}, tree, true),
		Entry("type mismatch", search.Filters{Type: "yoga"}, squat, false),
		Entry("category", search.Filters{Category: "stretching"}, tree, true),
		Entry("difficulty", search.Filters{Difficulty: "advanced"}, squat, false),
		Entry("muscle substring", search.Filters{Muscle: "quad"}, squat, true),
		Entry("legs group", search.Filters{Muscle: "legs"}, squat, true),
		Entry("core group", search.Filters{Muscle: "core"}, crunch, true),
		Entry("core group literal", search.Filters{Muscle: "core"}, tree, true),
		Entry("legs group miss", search.Filters{Muscle: "legs"}, crunch, false),
		Entry("strength kind", search.Filters{Kind: "strength"}, squat, true),
		Entry("flexibility kind", search.Filters{Kind: "flexibility"}, squat, false),
		Entry("balance kind by name", search.Filters{Kind: "balance"}, tree, true),
		Entry("balance kind handstand", search.Filters{Kind: "balance"}, handstand, true),
		Entry("balance kind miss", search.Filters{Kind: "balance"}, squat, false),
		Entry("unknown kind does not filter", search.Filters{Kind: "power"}, squat, true),
	)

	It("reports zero filters", func() {
		Expect(search.Filters{}.IsZero()).To(BeTrue())
		Expect(search.Filters{Muscle: "core"}.IsZero()).To(BeFalse())
	})
})
