package catalog_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/catalog"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

type stubExercises struct {
	records []skill.RawExercise
	err     error
}

func (s *stubExercises) Exercises(_ context.Context) ([]skill.RawExercise, error) {
	return s.records, s.err
}

type stubYoga struct {
	byLevel map[string][]skill.RawPose
	errs    map[string]error
}

func (s *stubYoga) Poses(_ context.Context, level string) ([]skill.RawPose, error) {
	if err := s.errs[level]; err != nil {
		return nil, err
	}
	return s.byLevel[level], nil
}

func (s *stubYoga) Pose(_ context.Context, id string) (skill.RawPose, error) {
	return skill.RawPose{}, skill.NotFoundError{Ref: "yoga:" + id}
}

var _ = Describe("Catalog", func() {
	var (
		ctx       context.Context
		exercises *stubExercises
		yoga      *stubYoga
		c         *catalog.Catalog
	)

	BeforeEach(func() {
		ctx = context.Background()
		exercises = &stubExercises{records: []skill.RawExercise{
			{ID: "1", Name: "Squat"},
			{ID: "2", Name: ""},
			{ID: "3", Name: "Treadmill Run"},
		}}
		yoga = &stubYoga{
			byLevel: map[string][]skill.RawPose{
				"beginner":     {{ID: "10", EnglishName: "Tree"}, {ID: "11", EnglishName: ""}},
				"intermediate": {{ID: "20", EnglishName: "Crow"}, {ID: "10", EnglishName: "Tree Variation"}},
				"expert":       {{ID: "30", EnglishName: "Scorpion"}},
			},
			errs: map[string]error{},
		}
		c = catalog.New(catalog.Config{Exercises: exercises, Yoga: yoga})
	})

	It("is empty until built", func() {
		Expect(c.Built()).To(BeFalse())
		_, err := c.Skills()
		Expect(err).To(MatchError(catalog.ErrNotBuilt))
	})

	It("concatenates exercises then deduped yoga poses", func() {
		Expect(c.Build(ctx)).To(Succeed())

		skills, err := c.Skills()
		Expect(err).NotTo(HaveOccurred())

		ids := make([]string, 0, len(skills))
		for _, s := range skills {
			ids = append(ids, s.ID)
		}
		Expect(ids).To(Equal([]string{"ex:1", "ex:3", "yoga:10", "yoga:20", "yoga:30"}))
		Expect(c.Len()).To(Equal(5))
	})

	It("lets the later level win for duplicate poses", func() {
		Expect(c.Build(ctx)).To(Succeed())

		s, err := c.Get("yoga:10")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal("Tree Variation"))
		Expect(s.Difficulty).To(Equal(skill.DifficultyIntermediate))
	})

	It("uses the query level as fallback difficulty", func() {
		Expect(c.Build(ctx)).To(Succeed())

		s, err := c.Get("yoga:30")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Difficulty).To(Equal(skill.DifficultyAdvanced))
	})

	It("records dropped records", func() {
		Expect(c.Build(ctx)).To(Succeed())

		stats := c.Stats()
		Expect(stats.Exercises).To(Equal(2))
		Expect(stats.DroppedExercises).To(Equal(1))
		Expect(stats.Yoga).To(Equal(3))
		Expect(stats.DroppedPoses).To(Equal(1))
	})

	It("keeps building when a yoga level fails", func() {
		yoga.errs["expert"] = &skill.UpstreamError{Source: "yoga provider", StatusCode: 500}

		Expect(c.Build(ctx)).To(Succeed())
		Expect(c.Stats().FailedYogaLevels).To(Equal([]string{"expert"}))

		_, err := c.Get("yoga:30")
		Expect(skill.IsNotFound(err)).To(BeTrue())
	})

	It("fails when the exercise catalog fails", func() {
		exercises.err = &skill.UpstreamError{Source: "exercise catalog", StatusCode: 404}

		err := c.Build(ctx)
		Expect(err).To(HaveOccurred())
		Expect(skill.IsUpstream(err)).To(BeTrue())
		Expect(c.Built()).To(BeFalse())
	})

	It("keeps the previous build when a rebuild fails", func() {
		Expect(c.Build(ctx)).To(Succeed())
		exercises.err = errors.New("offline")

		Expect(c.Build(ctx)).NotTo(Succeed())
		Expect(c.Len()).To(Equal(5))
	})

	It("builds without a yoga source", func() {
		c = catalog.New(catalog.Config{Exercises: exercises})
		Expect(c.Build(ctx)).To(Succeed())
		Expect(c.Len()).To(Equal(2))
	})

	It("clears on Invalidate", func() {
		Expect(c.Build(ctx)).To(Succeed())
		c.Invalidate()

		Expect(c.Built()).To(BeFalse())
		Expect(c.Len()).To(BeZero())
		_, err := c.Get("ex:1")
		Expect(err).To(MatchError(catalog.ErrNotBuilt))
	})

	It("returns a copy from Skills", func() {
		Expect(c.Build(ctx)).To(Succeed())

		skills, _ := c.Skills()
		skills[0].Name = "mutated"

		s, _ := c.Get("ex:1")
		Expect(s.Name).To(Equal("Squat"))
	})
})
