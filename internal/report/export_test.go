package report_test

import (
	"bytes"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/internal/report"
	"github.com/pointtaken/timesheet/internal/timeentry"
)

var _ = Describe("CSV export", func() {
	var (
		cfg     project.OrganizationConfig
		entries []timeentry.TimeEntry
	)

	BeforeEach(func() {
		cfg = project.OrganizationConfig{
			OrganizationID:   "acme",
			OrganizationName: "Acme",
			Consultants:      map[string]float64{"Anna": 1550},
			ProjectManager:   map[string]float64{"Kariann": 1550},
		}
		entries = []timeentry.TimeEntry{
			entry("Anna", "2024-03-15", 2, 3100, "Dev", false),
			entry("Anna", "2024-03-01", 8, 12400, "Dev", false),
			entry("Kariann", "2024-03-05", 1, 1550, "Møter", true),
			entry("Anna", "2024-04-01", 5, 7750, "Dev", false),
		}
	})

	It("writes the sections in order", func() {
		var buf bytes.Buffer
		err := report.WriteCSV(&buf, cfg, entries, []string{"2024-03"})
		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		sections := []string{
			"Timesheet Export for Acme",
			"SUMMARY",
			"CATEGORY SUMMARY",
			"CONSULTANT SUMMARY",
			"PROJECT MANAGEMENT",
			"DETAILED TIME ENTRIES",
		}
		last := -1
		for _, section := range sections {
			idx := strings.Index(out, section)
			Expect(idx).To(BeNumerically(">", last), "section %q out of order", section)
			last = idx
		}
	})

	It("only exports the filtered period, detail rows date ascending", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, cfg, entries, []string{"2024-03"})).To(Succeed())

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("2024-04-01"))

		first := strings.Index(out, "2024-03-01")
		second := strings.Index(out, "2024-03-05")
		third := strings.Index(out, "2024-03-15")
		detail := strings.Index(out, "DETAILED TIME ENTRIES")
		Expect(first).To(BeNumerically(">", detail))
		Expect(second).To(BeNumerically(">", first))
		Expect(third).To(BeNumerically(">", second))
	})

	It("formats costs with the Norwegian thousands separator", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, cfg, entries, []string{"2024-03"})).To(Succeed())

		// 12400 groups with a non-breaking space: 12\u00a0400.
		Expect(buf.String()).To(ContainSubstring("12\u00a0400"))
	})

	It("marks missing categories as N/A in the detail rows", func() {
		noCategory := []timeentry.TimeEntry{entry("Anna", "2024-03-01", 1, 1550, "", false)}

		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, cfg, noCategory, []string{"2024-03"})).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("N/A"))
	})

	It("skips the category and manager sections when they are empty", func() {
		consultantOnly := []timeentry.TimeEntry{entry("Anna", "2024-03-01", 1, 1550, "", false)}

		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, cfg, consultantOnly, []string{"2024-03"})).To(Succeed())

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("CATEGORY SUMMARY"))
		Expect(out).NotTo(ContainSubstring("PROJECT MANAGEMENT"))
		Expect(out).To(ContainSubstring("CONSULTANT SUMMARY"))
	})
})

var _ = Describe("Export filename", func() {
	It("combines organization, period and date", func() {
		now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
		name := report.Filename("Røde Kors", []string{"2024-03"}, now)
		Expect(name).To(Equal("timesheet_Røde_Kors_2024-03_2024-04-02.csv"))
	})

	It("keeps slashes out of the filename", func() {
		now := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
		name := report.Filename("Infunnel/Holmen", []string{"2024-02", "2024-03"}, now)
		Expect(name).To(Equal("timesheet_Infunnel-Holmen_2024-02_2024-03_2024-04-02.csv"))
	})
})
