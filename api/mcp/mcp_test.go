package mcp_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocksolid/rocksolid/api/mcp"
	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/catalog"
	rslogger "github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/search"
	testutils "github.com/rocksolid/rocksolid/pkg/utils/test"
)

var _ = Describe("MCP Server", func() {
	var searcher *apisearch.Searcher

	BeforeEach(func() {
		exercises, yoga := testutils.Fixtures()
		cat := catalog.New(catalog.Config{Exercises: exercises, Yoga: yoga})
		searcher = apisearch.NewSearcher(cat, nil, search.Config{}, rslogger.Nop())
	})

	Describe("NewServer", func() {
		It("returns an error when the searcher is nil", func() {
			_, err := mcp.NewServer(mcp.Config{Logger: rslogger.Nop()})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("searcher is required"))
		})

		It("returns an error when logger is nil", func() {
			_, err := mcp.NewServer(mcp.Config{Searcher: searcher})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("logger is required"))
		})

		It("creates a server with valid config", func() {
			server, err := mcp.NewServer(mcp.Config{Searcher: searcher, Logger: rslogger.Nop()})
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Handler()).NotTo(BeNil())
		})

		It("creates an empty server in noop mode", func() {
			server, err := mcp.NewServer(mcp.Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(server.Handler()).NotTo(BeNil())
		})
	})
})
