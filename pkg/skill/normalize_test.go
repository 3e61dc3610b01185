package skill_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

func decodeExercise(doc string) skill.RawExercise {
	var raw skill.RawExercise
	ExpectWithOffset(1, json.Unmarshal([]byte(doc), &raw)).To(Succeed())
	return raw
}

func decodePose(doc string) skill.RawPose {
	var raw skill.RawPose
	ExpectWithOffset(1, json.Unmarshal([]byte(doc), &raw)).To(Succeed())
	return raw
}

var _ = Describe("NormalizeExercise", func() {
	It("maps a bench press record onto a Skill", func() {
		raw := decodeExercise(`{
			"id": 5,
			"name": "Bench Press",
			"level": "intermediate",
			"category": "strength",
			"equipment": "Barbell",
			"primaryMuscles": ["chest"],
			"secondaryMuscles": ["triceps", "shoulders"]
		}`)

		s, ok := skill.NormalizeExercise(raw)
		Expect(ok).To(BeTrue())
		Expect(s.ID).To(Equal("ex:5"))
		Expect(s.Name).To(Equal("Bench Press"))
		Expect(s.Type).To(Equal(skill.TypeExercise))
		Expect(s.Category).To(Equal(skill.CategoryStrength))
		Expect(s.Difficulty).To(Equal(skill.DifficultyIntermediate))
		Expect(s.Muscles).To(Equal([]string{"chest", "triceps", "shoulders"}))
		Expect(s.Equipment).To(Equal("Barbell"))
	})

	It("drops records with an empty name", func() {
		_, ok := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": ""}`))
		Expect(ok).To(BeFalse())
	})

	It("drops records with a whitespace-only name", func() {
		_, ok := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "   "}`))
		Expect(ok).To(BeFalse())
	})

	It("drops records without an id", func() {
		_, ok := skill.NormalizeExercise(decodeExercise(`{"name": "Squat"}`))
		Expect(ok).To(BeFalse())
	})

	It("accepts string ids", func() {
		s, ok := skill.NormalizeExercise(decodeExercise(`{"id": "Barbell_Squat", "name": "Barbell Squat"}`))
		Expect(ok).To(BeTrue())
		Expect(s.ID).To(Equal("ex:Barbell_Squat"))
	})

	It("is idempotent", func() {
		raw := decodeExercise(`{"id": 9, "name": "Rowing Machine", "level": "beginner", "primaryMuscles": ["Lats "]}`)
		first, _ := skill.NormalizeExercise(raw)
		second, _ := skill.NormalizeExercise(raw)
		Expect(second).To(Equal(first))
	})

	DescribeTable("category inference",
		func(name, category string, expected skill.Category) {
			Expect(skill.InferExerciseCategory(name, category)).To(Equal(expected))
		},
		Entry("cardio keyword in name", "Treadmill Run", "", skill.CategoryCardio),
		Entry("cardio keyword in category", "Intervals", "cardio", skill.CategoryCardio),
		Entry("jump rope phrase", "Jump Rope", "plyometrics", skill.CategoryCardio),
		Entry("stretch keyword", "Hamstring Stretch", "", skill.CategoryStretching),
		Entry("mobility category", "Hip Circles", "mobility", skill.CategoryStretching),
		Entry("cardio wins over stretch", "Bike Stretch", "", skill.CategoryCardio),
		Entry("strength default", "Deadlift", "strength", skill.CategoryStrength),
	)

	DescribeTable("difficulty canonicalization",
		func(level string, expected skill.Difficulty) {
			s, ok := skill.NormalizeExercise(skill.RawExercise{ID: "1", Name: "Plank", Level: level})
			Expect(ok).To(BeTrue())
			Expect(s.Difficulty).To(Equal(expected))
		},
		Entry("beginner", "Beginner", skill.DifficultyBeginner),
		Entry("intermediate", "INTERMEDIATE", skill.DifficultyIntermediate),
		Entry("advanced", "advanced", skill.DifficultyAdvanced),
		Entry("expert is not an exercise level", "expert", skill.DifficultyUnknown),
		Entry("empty", "", skill.DifficultyUnknown),
	)

	It("appends target and bodyPart after primary and secondary muscles", func() {
		s, ok := skill.NormalizeExercise(decodeExercise(`{
			"id": 3, "name": "Lunge",
			"primaryMuscles": ["Quadriceps"],
			"secondaryMuscles": ["", "Glutes"],
			"target": "hamstrings",
			"bodyPart": ["upper legs"]
		}`))
		Expect(ok).To(BeTrue())
		Expect(s.Muscles).To(Equal([]string{"quadriceps", "glutes", "hamstrings", "upper legs"}))
	})

	It("defaults equipment to Unknown", func() {
		s, _ := skill.NormalizeExercise(skill.RawExercise{ID: "2", Name: "Push Up", Equipment: "  "})
		Expect(s.Equipment).To(Equal("Unknown"))
	})

	Describe("instructions", func() {
		It("keeps an array as one step per entry", func() {
			s, _ := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "Dip", "instructions": [" Grip the bars. ", "", "Lower yourself."]}`))
			Expect(s.Instructions).To(Equal([]string{"Grip the bars.", "Lower yourself."}))
		})

		It("splits a string on line breaks first", func() {
			s, _ := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "Dip", "instructions": "Grip the bars. Stay tall.\r\nLower yourself.\n\nPress up."}`))
			Expect(s.Instructions).To(Equal([]string{"Grip the bars. Stay tall.", "Lower yourself.", "Press up."}))
		})

		It("falls back to sentence boundaries for a single line", func() {
			s, _ := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "Dip", "instructions": "Grip the bars.  Lower yourself. Press up."}`))
			Expect(s.Instructions).To(Equal([]string{"Grip the bars", "Lower yourself", "Press up."}))
		})

		It("keeps a single sentence as one step", func() {
			s, _ := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "Dip", "instructions": "Just dip."}`))
			Expect(s.Instructions).To(Equal([]string{"Just dip."}))
		})

		It("returns no steps when instructions are missing", func() {
			s, _ := skill.NormalizeExercise(decodeExercise(`{"id": 1, "name": "Dip"}`))
			Expect(s.Instructions).To(BeEmpty())
		})
	})
})

var _ = Describe("NormalizeYoga", func() {
	It("maps a downward dog pose onto a Skill", func() {
		raw := decodePose(`{"id": 12, "english_name": "Downward Dog", "category_name": "Hip Opener", "difficulty_level": "Beginner"}`)

		s, ok := skill.NormalizeYoga(raw, "")
		Expect(ok).To(BeTrue())
		Expect(s.ID).To(Equal("yoga:12"))
		Expect(s.Name).To(Equal("Downward Dog"))
		Expect(s.Type).To(Equal(skill.TypeYoga))
		Expect(s.Category).To(Equal(skill.CategoryStretching))
		Expect(s.Difficulty).To(Equal(skill.DifficultyBeginner))
		Expect(s.Muscles).To(Equal([]string{"hip flexors", "glutes"}))
		Expect(s.Equipment).To(Equal("None"))
		Expect(s.Instructions).To(BeEmpty())
	})

	It("falls back to name when english_name is missing", func() {
		s, ok := skill.NormalizeYoga(decodePose(`{"id": 4, "name": "Tree"}`), "")
		Expect(ok).To(BeTrue())
		Expect(s.Name).To(Equal("Tree"))
	})

	It("drops poses without any name", func() {
		_, ok := skill.NormalizeYoga(decodePose(`{"id": 4, "english_name": " ", "name": ""}`), "")
		Expect(ok).To(BeFalse())
	})

	It("drops poses without an id", func() {
		_, ok := skill.NormalizeYoga(decodePose(`{"english_name": "Tree"}`), "")
		Expect(ok).To(BeFalse())
	})

	It("uses the caller's level only when the pose has none", func() {
		s, _ := skill.NormalizeYoga(decodePose(`{"id": 1, "english_name": "Crow"}`), "expert")
		Expect(s.Difficulty).To(Equal(skill.DifficultyAdvanced))

		s, _ = skill.NormalizeYoga(decodePose(`{"id": 1, "english_name": "Crow", "level": "intermediate"}`), "expert")
		Expect(s.Difficulty).To(Equal(skill.DifficultyIntermediate))
	})

	DescribeTable("muscle inference order",
		func(category string, expected []string) {
			Expect(skill.InferYogaMuscles(category)).To(Equal(expected))
		},
		Entry("core", "Core Yoga", []string{"abdominals", "obliques"}),
		Entry("backbend", "Backbend Yoga", []string{"lower back", "spinal erectors"}),
		Entry("chest then shoulder dedupes", "Chest and Shoulder Opener", []string{"chest", "shoulders"}),
		Entry("twist after core keeps first obliques", "Core Twist", []string{"abdominals", "obliques", "spine"}),
		Entry("balance", "Standing Balance", []string{"core", "feet"}),
		Entry("hip before hamstring regardless of source order", "Hamstring and Hip", []string{"hip flexors", "glutes", "hamstrings"}),
		Entry("no keywords", "Restorative", []string{}),
	)
})

var _ = Describe("IDs", func() {
	It("keeps exercise and yoga ids disjoint", func() {
		for _, id := range []string{"1", "12", "abc", ""} {
			Expect(skill.NewID(skill.PrefixExercise, id)).NotTo(Equal(skill.NewID(skill.PrefixYoga, id)))
		}
	})

	It("derives the source from the prefix", func() {
		t, ok := skill.SourceOf("yoga:12")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(skill.TypeYoga))

		t, ok = skill.SourceOf("ex:5")
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(skill.TypeExercise))

		_, ok = skill.SourceOf("exname:push up")
		Expect(ok).To(BeFalse())
	})
})
