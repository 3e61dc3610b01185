package app_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/config"
	"github.com/rocksolid/rocksolid/pkg/eventstream/kafka"
	"github.com/rocksolid/rocksolid/pkg/eventstream/nop"
	"github.com/rocksolid/rocksolid/pkg/storage/inmemory"
	"github.com/rocksolid/rocksolid/pkg/storage/sqlite"
)

func newCmd(configDir string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config-dir", configDir, "")
	cmd.Flags().Bool("debug", false, "")
	return cmd
}

var _ = Describe("Env", func() {
	var (
		configDir string
		env       *app.Env
	)

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()

		var err error
		env, err = app.NewEnv(newCmd(configDir))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(env.Close)
	})

	It("binds registered flags over config defaults", func() {
		cmd := newCmd(configDir)
		var driver string
		config.AddStringFlag(cmd, config.Flags, config.FlagStorageDriver, &driver)
		Expect(cmd.Flags().Set("storage", "inmemory")).To(Succeed())

		e, err := app.NewEnv(cmd, config.FlagStorageDriver)
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Viper.GetString("storage.driver")).To(Equal("inmemory"))
	})

	It("keeps local collections under the config dir", func() {
		mySkills, err := env.MySkills()
		Expect(err).NotTo(HaveOccurred())

		added, err := mySkills.Add(collection.Ref("ex:1"))
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		entries, err := os.ReadDir(filepath.Join(configDir, "collections"))
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).NotTo(BeEmpty())

		routines, err := env.Routines()
		Expect(err).NotTo(HaveOccurred())
		Expect(routines.Load()).To(BeEmpty())
	})

	It("shares one catalog between calls", func() {
		Expect(env.Catalog()).To(BeIdenticalTo(env.Catalog()))
		Expect(env.Resolver()).To(BeIdenticalTo(env.Resolver()))
		Expect(env.SearchLimit()).To(Equal(200))
	})

	Describe("StorageDriver", func() {
		It("opens the default SQLite database inside the config dir", func() {
			driver, err := env.StorageDriver(context.Background())
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(driver.Close)

			Expect(driver).To(BeAssignableToTypeOf(&sqlite.SQLiteDriver{}))
			Expect(filepath.Join(configDir, "routines.db")).To(BeAnExistingFile())
		})

		It("opens the in-memory driver", func() {
			env.Viper.Set("storage.driver", config.StorageDriverMemory)

			driver, err := env.StorageDriver(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(driver).To(BeAssignableToTypeOf(&inmemory.Driver{}))
		})

		It("requires a DSN for postgres", func() {
			env.Viper.Set("storage.driver", config.StorageDriverPostgres)

			_, err := env.StorageDriver(context.Background())
			Expect(err).To(MatchError(ContainSubstring("postgres_dsn")))
		})

		It("rejects unknown drivers", func() {
			env.Viper.Set("storage.driver", "mongo")

			_, err := env.StorageDriver(context.Background())
			Expect(err).To(MatchError(ContainSubstring("unknown storage driver")))
		})
	})

	Describe("Publisher", func() {
		It("falls back to the no-op publisher without brokers", func() {
			pub, err := env.Publisher()
			Expect(err).NotTo(HaveOccurred())
			Expect(pub).To(BeAssignableToTypeOf(&nop.Publisher{}))
		})

		It("creates a kafka publisher when brokers are configured", func() {
			env.Viper.Set("eventstream.kafka_brokers", "localhost:9092")

			pub, err := env.Publisher()
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(pub.Close)

			kp, ok := pub.(*kafka.Publisher)
			Expect(ok).To(BeTrue())
			Expect(kp.Topic()).To(Equal("rocksolid.routines"))
		})
	})
})
