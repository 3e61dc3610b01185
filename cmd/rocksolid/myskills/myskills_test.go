package myskillscmder_test

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	myskillscmder "github.com/rocksolid/rocksolid/cmd/rocksolid/myskills"
	"github.com/rocksolid/rocksolid/pkg/skill"
	testutils "github.com/rocksolid/rocksolid/pkg/utils/test"
)

var _ = Describe("myskills", func() {
	var (
		yoga      *httptest.Server
		exercises string
		configDir string
	)

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()

		var err error
		exercises, err = testutils.WriteExerciseCatalog(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		yoga = testutils.NewYogaServer()
		DeferCleanup(yoga.Close)
	})

	run := func(args ...string) (string, error) {
		cmd := myskillscmder.NewMySkillsCmd()
		cmd.PersistentFlags().String("config-dir", configDir, "")
		cmd.PersistentFlags().Bool("debug", false, "")

		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	sources := func(args ...string) []string {
		return append(args, "--exercise-url", exercises, "--yoga-base", yoga.URL)
	}

	It("starts empty", func() {
		out, err := run("list")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("My Skills is empty"))
	})

	It("adds resolved skills by canonical id", func() {
		out, err := run(sources("add", "ex:1", "yoga 12", "push up")...)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Barbell Squat"))
		Expect(out).To(ContainSubstring("Downward Dog"))

		out, err = run("list", "--quiet")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("ex:1\nyoga:12\nex:3\n"))
	})

	It("does not add a skill twice", func() {
		_, err := run(sources("add", "ex:1")...)
		Expect(err).NotTo(HaveOccurred())

		out, err := run(sources("add", "1")...)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("already in My Skills"))
	})

	It("rejects unknown skills", func() {
		_, err := run(sources("add", "ex:404")...)
		Expect(err).To(MatchError(ContainSubstring("no skill matches")))
	})

	It("lists resolved skills by name", func() {
		_, err := run(sources("add", "yoga:20", "ex:2")...)
		Expect(err).NotTo(HaveOccurred())

		out, err := run(sources("list")...)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Goblet Squat"))
		Expect(out).To(ContainSubstring("Tree Pose"))
		Expect(out).To(ContainSubstring("2 of 2 skills resolved"))
	})

	It("removes and clears", func() {
		_, err := run(sources("add", "ex:1", "ex:2")...)
		Expect(err).NotTo(HaveOccurred())

		out, err := run("remove", "ex:1", "ex:9")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("- ex:1"))
		Expect(out).To(ContainSubstring("not in My Skills"))

		out, _ = run("list", "-q")
		Expect(out).To(Equal("ex:2\n"))

		_, err = run("clear")
		Expect(err).NotTo(HaveOccurred())
		out, _ = run("list", "-q")
		Expect(out).To(BeEmpty())
	})

	It("exports and imports", func() {
		_, err := run(sources("add", "ex:1", "yoga:12")...)
		Expect(err).NotTo(HaveOccurred())

		file := filepath.Join(GinkgoT().TempDir(), "export.json")
		out, err := run("export", "-o", file)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Exported to"))

		data, err := os.ReadFile(file)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"signature": "RockSolid/MySkills/v1"`))

		_, err = run("clear")
		Expect(err).NotTo(HaveOccurred())

		out, err = run("import", file)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Imported 2 of 2 skills (0 skipped)"))

		out, _ = run("list", "-q")
		Expect(out).To(Equal("ex:1\nyoga:12\n"))
	})

	It("rejects a document with another signature", func() {
		file := filepath.Join(GinkgoT().TempDir(), "routine.json")
		Expect(os.WriteFile(file, []byte(`{"signature":"RockSolid/Routine/v1","exportedAt":"2024-01-01T00:00:00.000Z","data":{"items":["ex:1"]}}`), 0o600)).To(Succeed())

		_, err := run("import", file)
		Expect(err).To(MatchError(skill.ErrSignatureMismatch))
	})
})
