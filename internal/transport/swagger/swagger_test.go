package swagger_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pointtaken/timesheet/internal/transport/swagger"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("LoadSpec", func() {
	It("parses and validates the shipped OpenAPI document", func() {
		doc, err := swagger.LoadSpec(context.Background(), "../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("Point Taken Timesheet API"))
		Expect(doc.Paths.Find("/organizations/{organizationID}/report")).NotTo(BeNil())
	})

	It("fails on a missing file", func() {
		_, err := swagger.LoadSpec(context.Background(), "does-not-exist.yml")
		Expect(err).To(HaveOccurred())
	})
})
