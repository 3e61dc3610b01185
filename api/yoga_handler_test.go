package api

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	rslogger "github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/source"
	"github.com/rocksolid/rocksolid/pkg/storage/inmemory"
)

var _ = Describe("Yoga pass-through", func() {
	var (
		server *Server
		yoga   *fakeForwarder
	)

	BeforeEach(func() {
		yoga = &fakeForwarder{body: json.RawMessage(`[{"id":12,"english_name":"Downward Dog"}]`)}

		var err error
		server, err = NewServer(Config{ListenAddr: ":0", Yoga: yoga}, inmemory.NewDriver(), rslogger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns the provider body untouched with cache headers", func() {
		req, err := http.NewRequest(http.MethodGet, "/v1/yoga/poses?level=beginner&foo=bar", nil)
		Expect(err).NotTo(HaveOccurred())

		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get("Cache-Control")).To(Equal("s-maxage=600, stale-while-revalidate=600"))

		Expect(yoga.route).To(Equal("poses"))
		Expect(yoga.params.Get("level")).To(Equal("beginner"))
		Expect(yoga.params.Has("foo")).To(BeFalse())
	})

	It("accepts the route as a query parameter", func() {
		status, _ := do(server, http.MethodGet, "/v1/yoga?route=categories&name=hip", "")
		Expect(status).To(Equal(fiber.StatusOK))
		Expect(yoga.route).To(Equal("categories"))
		Expect(yoga.params.Get("name")).To(Equal("hip"))
	})

	It("returns 400 for unknown routes", func() {
		yoga.err = source.ErrUnknownRoute
		status, body := do(server, http.MethodGet, "/v1/yoga/secrets", "")
		Expect(status).To(Equal(fiber.StatusBadRequest))
		Expect(string(body)).To(ContainSubstring("Invalid route"))
	})

	It("returns 502 when the provider fails", func() {
		yoga.err = &skill.UpstreamError{Source: "yoga provider", StatusCode: 500}
		status, body := do(server, http.MethodGet, "/v1/yoga/poses", "")
		Expect(status).To(Equal(fiber.StatusBadGateway))
		Expect(string(body)).To(ContainSubstring("Yoga API request failed"))
	})
})
