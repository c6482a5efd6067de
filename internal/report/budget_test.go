package report_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/internal/report"
	"github.com/pointtaken/timesheet/internal/timeentry"
)

var _ = Describe("MonthlyBudgetStatus", func() {
	It("is nil when no monthly budget is configured", func() {
		Expect(report.MonthlyBudgetStatus(nil, nil)).To(BeNil())
	})

	It("counts consultant hours only", func() {
		budget := 100.0
		entries := []timeentry.TimeEntry{
			entry("Anna", "2024-03-01", 40, 60000, "Dev", false),
			entry("Kariann", "2024-03-01", 30, 48000, "Møter", true),
		}

		status := report.MonthlyBudgetStatus(entries, &budget)
		Expect(status.UsedHours).To(Equal(40.0))
		Expect(status.UtilizationPercent).To(Equal(40.0))
		Expect(status.Warning).To(BeFalse())
	})

	It("warns at exactly 85 percent", func() {
		budget := 100.0
		entries := []timeentry.TimeEntry{
			entry("Anna", "2024-03-01", 85, 0, "Dev", false),
		}

		status := report.MonthlyBudgetStatus(entries, &budget)
		Expect(status.UtilizationPercent).To(Equal(85.0))
		Expect(status.Warning).To(BeTrue())
		Expect(status.Exceeded).To(BeFalse())
	})

	It("does not warn just below the threshold", func() {
		budget := 100.0
		entries := []timeentry.TimeEntry{
			entry("Anna", "2024-03-01", 84.9, 0, "Dev", false),
		}

		status := report.MonthlyBudgetStatus(entries, &budget)
		Expect(status.Warning).To(BeFalse())
	})
})

var _ = Describe("TotalBudgetStatus", func() {
	budget := 100.0
	entries := []timeentry.TimeEntry{
		entry("Anna", "2024-01-01", 60, 0, "Dev", false),
		entry("Kariann", "2024-02-01", 45, 0, "Møter", true),
	}

	It("includes manager hours when the policy says so", func() {
		status := report.TotalBudgetStatus(entries, &budget, true)
		Expect(status.UsedHours).To(Equal(105.0))
		Expect(status.Warning).To(BeTrue())
		Expect(status.Exceeded).To(BeTrue())
	})

	It("excludes manager hours when the policy says so", func() {
		status := report.TotalBudgetStatus(entries, &budget, false)
		Expect(status.UsedHours).To(Equal(60.0))
		Expect(status.Warning).To(BeFalse())
		Expect(status.Exceeded).To(BeFalse())
	})

	It("flags exceeded at exactly 100 percent", func() {
		exact := []timeentry.TimeEntry{entry("Anna", "2024-01-01", 100, 0, "Dev", false)}
		status := report.TotalBudgetStatus(exact, &budget, true)
		Expect(status.Exceeded).To(BeTrue())
	})

	It("is nil when no lifetime budget is configured", func() {
		Expect(report.TotalBudgetStatus(entries, nil, true)).To(BeNil())
	})
})

var _ = Describe("WorkingDaysInMonth", func() {
	It("counts Mon-Fri days", func() {
		// March 2024 starts on a Friday and has 31 days.
		Expect(report.WorkingDaysInMonth("2024-03")).To(Equal(21))
		// February 2024 is a leap month starting on a Thursday.
		Expect(report.WorkingDaysInMonth("2024-02")).To(Equal(21))
		// September 2024 starts on a Sunday.
		Expect(report.WorkingDaysInMonth("2024-09")).To(Equal(21))
	})

	It("returns zero for malformed months", func() {
		Expect(report.WorkingDaysInMonth("not-a-month")).To(Equal(0))
	})
})

var _ = Describe("ConsultantCapacities", func() {
	cfg := project.OrganizationConfig{
		Consultants:           map[string]float64{"Anna": 1500, "Bjørn": 1500},
		ConsultantPercentages: map[string]float64{"Anna": 100, "Bjørn": 50},
	}

	It("scales capacity by percentage, working days and workday length", func() {
		entries := []timeentry.TimeEntry{
			entry("Anna", "2024-03-04", 80, 0, "Dev", false),
		}

		capacities := report.ConsultantCapacities(entries, cfg, []string{"2024-03"}, 7.5)
		Expect(capacities).To(HaveLen(2))

		// 21 working days in March 2024.
		Expect(capacities[0].Name).To(Equal("Anna"))
		Expect(capacities[0].CapacityHours).To(BeNumerically("~", 157.5, 1e-9))
		Expect(capacities[0].LoggedHours).To(Equal(80.0))
		Expect(capacities[0].OverCapacity).To(BeFalse())

		Expect(capacities[1].Name).To(Equal("Bjørn"))
		Expect(capacities[1].CapacityHours).To(BeNumerically("~", 78.75, 1e-9))
	})

	It("sums working days across a multi-month selection", func() {
		capacities := report.ConsultantCapacities(nil, cfg, []string{"2024-02", "2024-03"}, 7.5)
		// 21 + 21 working days.
		Expect(capacities[0].CapacityHours).To(BeNumerically("~", 315, 1e-9))
	})

	It("flags utilization at or above 100 percent", func() {
		entries := []timeentry.TimeEntry{
			entry("Bjørn", "2024-03-04", 80, 0, "Dev", false),
		}

		capacities := report.ConsultantCapacities(entries, cfg, []string{"2024-03"}, 7.5)
		Expect(capacities[1].Name).To(Equal("Bjørn"))
		Expect(capacities[1].OverCapacity).To(BeTrue())
	})

	It("ignores manager hours when attributing logged time", func() {
		entries := []timeentry.TimeEntry{
			entry("Anna", "2024-03-04", 10, 0, "Møter", true),
		}

		capacities := report.ConsultantCapacities(entries, cfg, []string{"2024-03"}, 7.5)
		Expect(capacities[0].LoggedHours).To(Equal(0.0))
	})
})

var _ = Describe("Build", func() {
	It("filters stats by month but checks the lifetime budget against everything", func() {
		budget := 100.0
		cfg := project.OrganizationConfig{
			OrganizationID:         "acme",
			OrganizationName:       "Acme",
			Consultants:            map[string]float64{"Anna": 1500},
			ConsultantPercentages:  map[string]float64{"Anna": 100},
			TotalBudget:            &budget,
			IncludeManagerInBudget: true,
		}
		entries := []timeentry.TimeEntry{
			entry("Anna", "2023-11-01", 90, 0, "Dev", false),
			entry("Anna", "2024-03-01", 8, 12000, "Dev", false),
		}

		result := report.Build(cfg, entries, []string{"2024-03"}, 7.5)

		Expect(result.Totals.TotalHours).To(Equal(8.0))
		Expect(result.ConsultantStats).To(HaveLen(1))
		Expect(result.TotalBudget.UsedHours).To(Equal(98.0))
		Expect(result.TotalBudget.Warning).To(BeTrue())
		Expect(result.TotalBudget.Exceeded).To(BeFalse())
		Expect(result.MonthlyBudget).To(BeNil())
	})
})
