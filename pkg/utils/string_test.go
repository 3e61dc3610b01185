package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("cuts to the limit including the ellipsis", func() {
		Expect(Truncate("this is a long string", 10)).To(Equal("this is a…"))
	})

	It("counts runes, not bytes", func() {
		Expect(Truncate("Ūrdhva Mukha Śvānāsana", 6)).To(Equal("Ūrdhv…"))
		Expect(Truncate("Śavāsana", 8)).To(Equal("Śavāsana"))
	})

	It("returns an empty string for a non-positive limit", func() {
		Expect(Truncate("Plank", 0)).To(BeEmpty())
	})
})

var _ = Describe("UserAgent", func() {
	It("carries the build version", func() {
		Expect(UserAgent()).To(Equal("rocksolid/" + Version))
	})
})
