package collection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/skill"
)

var _ = Describe("ParseUserRef", func() {
	DescribeTable("accepted shapes",
		func(input string, expected collection.Ref) {
			ref, err := collection.ParseUserRef(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(ref).To(Equal(expected))
		},
		Entry("canonical exercise", "ex:45", collection.Ref("ex:45")),
		Entry("canonical yoga", "yoga:12", collection.Ref("yoga:12")),
		Entry("canonical name", "exname:push up", collection.Ref("exname:push up")),
		Entry("bare integer", "45", collection.Ref("ex:45")),
		Entry("loose exercise with a space", "ex 45", collection.Ref("ex:45")),
		Entry("loose exercise with a dash", "EX-45", collection.Ref("ex:45")),
		Entry("loose yoga", "yoga #12", collection.Ref("yoga:12")),
		Entry("surrounding whitespace", "  ex:7  ", collection.Ref("ex:7")),
		Entry("exercise name", "Push Up", collection.Ref("exname:push up")),
		Entry("name with digits elsewhere", "3/4 Sit-Up", collection.Ref("exname:3/4 sit-up")),
	)

	It("rejects empty input", func() {
		_, err := collection.ParseUserRef("   ")
		var ve skill.ValidationError
		Expect(err).To(BeAssignableToTypeOf(ve))
	})

	DescribeTable("rejects a prefix without an id",
		func(input string) {
			ref, err := collection.ParseUserRef(input)
			var ve skill.ValidationError
			Expect(err).To(BeAssignableToTypeOf(ve))
			Expect(ref).To(BeEmpty())
		},
		Entry("exercise", "ex:"),
		Entry("yoga", "yoga:"),
		Entry("name", "exname:"),
		Entry("name with trailing blanks", "exname:   "),
		Entry("upper case", "YOGA:"),
	)

	It("still reads other text ending in a colon as a name", func() {
		ref, err := collection.ParseUserRef("note:")
		Expect(err).NotTo(HaveOccurred())
		Expect(ref).To(Equal(collection.Ref("exname:note:")))
	})
})

var _ = Describe("Ref", func() {
	It("classifies references", func() {
		Expect(collection.Ref("ex:1").IsSkill()).To(BeTrue())
		Expect(collection.Ref("yoga:1").IsSkill()).To(BeTrue())
		Expect(collection.Ref("ex:").IsSkill()).To(BeFalse())
		Expect(collection.Ref("exname:row").IsSkill()).To(BeFalse())
		Expect(collection.Ref("exname:row").IsItem()).To(BeTrue())
		Expect(collection.Ref("exname:").IsItem()).To(BeFalse())
		Expect(collection.Ref("routine:1").IsItem()).To(BeFalse())
	})
})
