package searchcmder

import (
	"bytes"
	"context"
	"errors"

	bubbletea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/catalog"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
	testutils "github.com/rocksolid/rocksolid/pkg/utils/test"
)

type recordingAdder struct {
	refs []collection.Ref
	err  error
}

func (r *recordingAdder) Add(ref collection.Ref) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, existing := range r.refs {
		if existing == ref {
			return false, nil
		}
	}
	r.refs = append(r.refs, ref)
	return true, nil
}

func names(skills []skill.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

var _ = Describe("printOutput", func() {
	sample := []skill.Skill{
		{ID: "ex:1", Name: "Barbell Squat", Type: skill.TypeExercise, Category: skill.CategoryStrength, Difficulty: skill.DifficultyIntermediate},
		{ID: "yoga:12", Name: "Downward Dog", Type: skill.TypeYoga, Category: skill.CategoryStretching, Difficulty: skill.DifficultyBeginner},
	}

	It("prints only ids in quiet mode", func() {
		var buf bytes.Buffer
		printOutput(&buf, &apisearch.Output{Skills: sample, Total: 2, Shown: 2}, true)
		Expect(buf.String()).To(Equal("ex:1\nyoga:12\n"))
	})

	It("reports an empty result", func() {
		var buf bytes.Buffer
		printOutput(&buf, &apisearch.Output{Query: "zzz"}, false)
		Expect(buf.String()).To(Equal("No skills found.\n"))
	})

	It("lists skills with a count", func() {
		var buf bytes.Buffer
		printOutput(&buf, &apisearch.Output{Query: "squat", Skills: sample[:1], Total: 1, Shown: 1}, false)
		Expect(buf.String()).To(ContainSubstring("Barbell Squat"))
		Expect(buf.String()).To(ContainSubstring("1 skills"))
	})

	It("mentions truncation", func() {
		var buf bytes.Buffer
		printOutput(&buf, &apisearch.Output{Skills: sample, Total: 9, Shown: 2, Truncated: true}, false)
		Expect(buf.String()).To(ContainSubstring("Showing 2 of 9 skills"))
	})
})

var _ = Describe("searchModel", func() {
	var (
		cat   *catalog.Catalog
		adder *recordingAdder
		model searchModel
	)

	press := func(m searchModel, msg bubbletea.KeyMsg) searchModel {
		next, _ := m.Update(msg)
		return next.(searchModel)
	}

	typeText := func(m searchModel, text string) searchModel {
		for _, r := range text {
			m = press(m, bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune{r}})
		}
		return m
	}

	BeforeEach(func() {
		exercises, yoga := testutils.Fixtures()
		cat = catalog.New(catalog.Config{Exercises: exercises, Yoga: yoga})
		Expect(cat.Build(context.Background())).To(Succeed())

		skills, err := cat.Skills()
		Expect(err).NotTo(HaveOccurred())

		adder = &recordingAdder{}
		model = newSearchModel(search.NewEngine(cat, search.Config{}), skills, apisearch.Input{}, 0, adder)
	})

	It("lists every skill by name for an empty query", func() {
		Expect(model.result.Total).To(Equal(8))
		Expect(model.result.Skills[0].Name).To(Equal("Barbell Squat"))
		Expect(model.View()).To(ContainSubstring("Barbell Squat"))
	})

	It("re-ranks as the query changes", func() {
		model = typeText(model, "squat")
		Expect(model.input.Value()).To(Equal("squat"))
		Expect(names(model.result.Skills)).To(ContainElements("Barbell Squat", "Goblet Squat"))
		Expect(names(model.result.Skills)).NotTo(ContainElement("Downward Dog"))
	})

	It("applies the initial filters", func() {
		skills, _ := cat.Skills()
		m := newSearchModel(search.NewEngine(cat, search.Config{}), skills, apisearch.Input{Type: "yoga"}, 0, adder)
		Expect(m.result.Total).To(Equal(3))
		for _, s := range m.result.Skills {
			Expect(s.Type).To(Equal(skill.TypeYoga))
		}
	})

	It("moves the cursor within bounds", func() {
		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyUp})
		Expect(model.cursor).To(Equal(0))

		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyDown})
		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyDown})
		Expect(model.cursor).To(Equal(2))

		for range 20 {
			model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyDown})
		}
		Expect(model.cursor).To(Equal(model.result.Shown - 1))
	})

	It("opens and closes the detail view", func() {
		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyEnter})
		Expect(model.detail).NotTo(BeNil())
		Expect(model.detail.Name).To(Equal("Barbell Squat"))
		Expect(model.detailView).NotTo(BeEmpty())

		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyEsc})
		Expect(model.detail).To(BeNil())
	})

	It("adds the selected skill to My Skills once", func() {
		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyCtrlA})
		Expect(adder.refs).To(Equal([]collection.Ref{"ex:1"}))
		Expect(model.status).To(ContainSubstring("Added Barbell Squat"))

		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyCtrlA})
		Expect(adder.refs).To(HaveLen(1))
		Expect(model.status).To(ContainSubstring("already in My Skills"))
	})

	It("shows add failures as errors", func() {
		adder.err = errors.New("disk full")
		model = press(model, bubbletea.KeyMsg{Type: bubbletea.KeyCtrlA})
		Expect(model.statusErr).To(BeTrue())
		Expect(model.View()).To(ContainSubstring("disk full"))
	})

	It("quits on ctrl+c", func() {
		_, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyCtrlC})
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(bubbletea.Quit()))
	})
})

var _ = Describe("visibleRange", func() {
	It("returns everything when it fits", func() {
		start, end := visibleRange(5, 3, 10)
		Expect([]int{start, end}).To(Equal([]int{0, 5}))
	})

	It("keeps the cursor in a scrolled window", func() {
		start, end := visibleRange(100, 50, 10)
		Expect(start).To(BeNumerically("<=", 50))
		Expect(end).To(BeNumerically(">", 50))
		Expect(end - start).To(Equal(10))
	})

	It("pins the window to the end", func() {
		start, end := visibleRange(100, 99, 10)
		Expect([]int{start, end}).To(Equal([]int{90, 100}))
	})
})
