package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/storage"
	"github.com/rocksolid/rocksolid/pkg/storage/sqlite"
	"github.com/rocksolid/rocksolid/pkg/storage/storagetest"
)

var _ = storagetest.DescribeDriver("SQLiteDriver", func(ctx context.Context) storage.Driver {
	driver, err := sqlite.NewSQLiteDriver(ctx, ":memory:")
	Expect(err).NotTo(HaveOccurred())
	return driver
})

var _ = Describe("NewSQLiteDriver", func() {
	It("creates a driver with file database", func() {
		ctx := context.Background()
		dbPath := filepath.Join(GinkgoT().TempDir(), "test.db")

		s, err := sqlite.NewSQLiteDriver(ctx, dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()

		// Verify file was created
		_, err = os.Stat(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	It("persists routines across reopen", func() {
		ctx := context.Background()
		dbPath := filepath.Join(GinkgoT().TempDir(), "persist.db")

		s, err := sqlite.NewSQLiteDriver(ctx, dbPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Create(ctx, storage.Routine{
			ID:        "p1",
			Name:      "Mobility",
			Items:     []string{"yoga:3"},
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		})).To(Succeed())
		Expect(s.Close()).To(Succeed())

		reopened, err := sqlite.NewSQLiteDriver(ctx, dbPath)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()

		got, err := reopened.Get(ctx, "p1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Mobility"))
		Expect(got.Items).To(Equal([]string{"yoga:3"}))
	})
})
