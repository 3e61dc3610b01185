package search_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/catalog"
	rslogger "github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/resolver"
	pkgsearch "github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
	testutils "github.com/rocksolid/rocksolid/pkg/utils/test"
)

var _ = Describe("Searcher", func() {
	var (
		ctx       context.Context
		exercises *testutils.MockExerciseSource
		yoga      *testutils.MockYogaSource
		cat       *catalog.Catalog
		searcher  *search.Searcher
	)

	BeforeEach(func() {
		ctx = context.Background()
		exercises, yoga = testutils.Fixtures()
		cat = catalog.New(catalog.Config{Exercises: exercises, Yoga: yoga, Logger: rslogger.Nop()})
		res := resolver.New(resolver.Config{Exercises: exercises, Yoga: yoga, Logger: rslogger.Nop()})
		searcher = search.NewSearcher(cat, res, pkgsearch.Config{}, rslogger.Nop())
	})

	Describe("Search", func() {
		It("builds the catalog on first use", func() {
			Expect(cat.Built()).To(BeFalse())

			output, err := searcher.Search(ctx, search.Input{Query: "squat"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Built()).To(BeTrue())
			Expect(output.Query).To(Equal("squat"))
			Expect(output.Total).To(Equal(2))
			Expect(output.Skills[0].Name).To(Equal("Barbell Squat"))
		})

		It("applies facet filters", func() {
			output, err := searcher.Search(ctx, search.Input{Type: "yoga"})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Total).To(Equal(3))
			for _, s := range output.Skills {
				Expect(s.Type).To(Equal(skill.TypeYoga))
			}
		})

		It("honours the limit", func() {
			output, err := searcher.Search(ctx, search.Input{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Shown).To(Equal(2))
			Expect(output.Truncated).To(BeTrue())
		})

		It("rebuilds the catalog after a refresh", func() {
			_, err := searcher.Search(ctx, search.Input{})
			Expect(err).NotTo(HaveOccurred())

			searcher.Refresh()
			Expect(cat.Built()).To(BeFalse())

			output, err := searcher.Search(ctx, search.Input{Query: "squat"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Built()).To(BeTrue())
			Expect(output.Total).To(Equal(2))
		})

		It("rejects negative limits", func() {
			_, err := searcher.Search(ctx, search.Input{Limit: -1})
			Expect(err).To(BeAssignableToTypeOf(skill.ValidationError{}))
		})

		It("surfaces catalog build failures", func() {
			exercises.Fail = true
			_, err := searcher.Search(ctx, search.Input{Query: "squat"})
			Expect(skill.IsUpstream(err)).To(BeTrue())
		})
	})

	Describe("Lookup", func() {
		It("serves skill ids from a built catalog", func() {
			Expect(cat.Build(ctx)).To(Succeed())
			exercises.Fail = true

			found, err := searcher.Lookup(ctx, "ex:3")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Push Up"))
		})

		It("falls back to the resolver for other references", func() {
			found, err := searcher.Lookup(ctx, "exname:push up")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal("ex:3"))
		})

		It("reports unknown references as not found", func() {
			_, err := searcher.Lookup(ctx, "yoga:999")
			Expect(skill.IsNotFound(err)).To(BeTrue())
		})

		It("rejects empty references", func() {
			_, err := searcher.Lookup(ctx, "  ")
			Expect(err).To(BeAssignableToTypeOf(skill.ValidationError{}))
		})
	})
})
