// Package storagetest holds the behaviour every storage.Driver must share,
// expressed as ginkgo specs that driver packages run against themselves.
package storagetest

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/storage"
)

// Factory opens a fresh, empty driver for one test.
type Factory func(ctx context.Context) storage.Driver

// DescribeDriver registers the shared driver specs under name.
func DescribeDriver(name string, open Factory) bool {
	return Describe(name, func() {
		var (
			ctx    context.Context
			driver storage.Driver
			base   time.Time
		)

		BeforeEach(func() {
			ctx = context.Background()
			driver = open(ctx)
			base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		})

		AfterEach(func() {
			if driver != nil {
				Expect(driver.Close()).To(Succeed())
			}
		})

		It("stores and retrieves a routine", func() {
			r := storage.Routine{ID: "a1", Name: "Legs", Items: []string{"ex:1", "yoga:2"}, CreatedAt: base}
			Expect(driver.Create(ctx, r)).To(Succeed())

			got, err := driver.Get(ctx, "a1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Legs"))
			Expect(got.Items).To(Equal([]string{"ex:1", "yoga:2"}))
			Expect(got.CreatedAt.Equal(base)).To(BeTrue())
		})

		It("keeps empty item lists non-nil", func() {
			Expect(driver.Create(ctx, storage.Routine{ID: "e", Name: "Empty", CreatedAt: base})).To(Succeed())

			got, err := driver.Get(ctx, "e")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Items).NotTo(BeNil())
			Expect(got.Items).To(BeEmpty())
		})

		It("returns NotFoundError for unknown ids", func() {
			_, err := driver.Get(ctx, "missing")
			Expect(err).To(MatchError(storage.NotFoundError{ID: "missing"}))
		})

		It("lists routines newest first", func() {
			Expect(driver.Create(ctx, storage.Routine{ID: "old", Name: "Old", CreatedAt: base})).To(Succeed())
			Expect(driver.Create(ctx, storage.Routine{ID: "new", Name: "New", CreatedAt: base.Add(time.Hour)})).To(Succeed())
			Expect(driver.Create(ctx, storage.Routine{ID: "mid", Name: "Mid", CreatedAt: base.Add(time.Minute)})).To(Succeed())

			routines, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]string, 0, len(routines))
			for _, r := range routines {
				ids = append(ids, r.ID)
			}
			Expect(ids).To(Equal([]string{"new", "mid", "old"}))
		})

		It("lists nothing from an empty store", func() {
			routines, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(routines).To(BeEmpty())
		})

		It("deletes routines", func() {
			Expect(driver.Create(ctx, storage.Routine{ID: "d", Name: "Gone", CreatedAt: base})).To(Succeed())
			Expect(driver.Delete(ctx, "d")).To(Succeed())

			_, err := driver.Get(ctx, "d")
			Expect(err).To(BeAssignableToTypeOf(storage.NotFoundError{}))

			Expect(driver.Delete(ctx, "d")).To(MatchError(storage.NotFoundError{ID: "d"}))
		})

		It("rejects duplicate ids", func() {
			r := storage.Routine{ID: "dup", Name: "Once", CreatedAt: base}
			Expect(driver.Create(ctx, r)).To(Succeed())
			Expect(driver.Create(ctx, r)).NotTo(Succeed())
		})

		It("does not share item slices with the caller", func() {
			items := []string{"ex:1"}
			Expect(driver.Create(ctx, storage.Routine{ID: "c", Name: "Copy", Items: items, CreatedAt: base})).To(Succeed())
			items[0] = "ex:999"

			got, err := driver.Get(ctx, "c")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Items).To(Equal([]string{"ex:1"}))
		})
	})
}
