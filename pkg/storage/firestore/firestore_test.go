package firestore_test

import (
	"context"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/pkg/storage"
	"github.com/rocksolid/rocksolid/pkg/storage/firestore"
	"github.com/rocksolid/rocksolid/pkg/storage/storagetest"
)

// emulator skips the suite unless a Firestore emulator is configured.
func emulator() {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		Skip("FIRESTORE_EMULATOR_HOST not set, skipping Firestore tests")
	}
}

var _ = storagetest.DescribeDriver("Driver", func(ctx context.Context) storage.Driver {
	emulator()

	driver, err := firestore.NewDriver(ctx, "rocksolid-test")
	Expect(err).NotTo(HaveOccurred())

	// One collection per test isolates runs on a shared emulator.
	collection := fmt.Sprintf("routines_%d", time.Now().UnixNano())
	return firestore.NewDriverWithClient(driver.Client, collection)
})

var _ = Describe("NewDriver", func() {
	It("requires a project id", func() {
		_, err := firestore.NewDriver(context.Background(), "")
		Expect(err).To(MatchError(ContainSubstring("project id")))
	})
})
