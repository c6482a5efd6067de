package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/pointtaken/timesheet/internal/project"
	"github.com/pointtaken/timesheet/internal/timeentry"
)

// Costs in the export follow the Norwegian thousands convention; the
// reports go straight to Norwegian customers. The tag must be the
// concrete "nb", the macrolanguage "no" carries no number data and
// falls back to root formatting.
var noPrinter = message.NewPrinter(language.MustParse("nb"))

func formatCost(cost float64) string {
	return noPrinter.Sprint(number.Decimal(cost, number.MaxFractionDigits(0)))
}

func formatHours(hours float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", hours), "0"), ".")
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// Filename builds the download name from the organization, the selected
// period and the export date. Slashes in organization names would split
// the filename into path segments.
func Filename(organizationName string, months []string, now time.Time) string {
	name := strings.ReplaceAll(organizationName, "/", "-")
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("timesheet_%s_%s_%s.csv", name, strings.Join(months, "_"), now.Format("2006-01-02"))
}

// WriteCSV renders the sectioned export: summary totals, category
// breakdown, consultant breakdown, manager breakdown, then every
// filtered entry in date order.
func WriteCSV(w io.Writer, cfg project.OrganizationConfig, all []timeentry.TimeEntry, months []string) error {
	filtered := FilterByMonths(all, months)
	totals := Summarize(filtered)
	consultantStats := ConsultantStats(filtered)
	managerStats := ProjectManagerStats(filtered)
	categoryStats := CategoryStats(filtered)

	cw := csv.NewWriter(w)

	write := func(record ...string) {
		// csv.Writer errors surface from Flush; no need to check each row.
		_ = cw.Write(record)
	}
	blank := func() { write("") }

	write("Timesheet Export for " + cfg.OrganizationName)
	write("Period: " + strings.Join(months, ", "))
	blank()

	write("SUMMARY")
	write("", "Hours", "Cost (NOK)")
	write("Consultants", formatHours(totals.ConsultantHours), formatCost(totals.ConsultantCost))
	write("Project Management", formatHours(totals.ManagerHours), formatCost(totals.ManagerCost))
	write("Total", formatHours(totals.TotalHours), formatCost(totals.TotalCost))
	blank()

	if len(categoryStats) > 0 {
		write("CATEGORY SUMMARY")
		write("Category", "Hours", "Cost (NOK)", "Percentage")
		for _, stat := range categoryStats {
			write(stat.Name, formatHours(stat.Hours), formatCost(stat.Cost), formatPercent(stat.Percentage))
		}
		blank()
	}

	if len(consultantStats) > 0 {
		write("CONSULTANT SUMMARY")
		write("Consultant", "Hours", "Cost (NOK)", "Percentage")
		for _, stat := range consultantStats {
			write(stat.Name, formatHours(stat.Hours), formatCost(stat.Cost), formatPercent(stat.Percentage))
		}
		blank()
	}

	if len(managerStats) > 0 {
		write("PROJECT MANAGEMENT")
		write("Project Manager", "Hours", "Cost (NOK)")
		for _, stat := range managerStats {
			write(stat.Name, formatHours(stat.Hours), formatCost(stat.Cost))
		}
		blank()
	}

	write("DETAILED TIME ENTRIES")
	write("Date", "Consultant", "Hours", "Category", "Description", "Cost (NOK)")

	detail := make([]timeentry.TimeEntry, len(filtered))
	copy(detail, filtered)
	sort.SliceStable(detail, func(i, j int) bool { return detail[i].Date < detail[j].Date })

	for _, e := range detail {
		category := e.Category
		if category == "" {
			category = "N/A"
		}
		write(e.Date, e.Consultant, formatHours(e.Hours), category, e.Description, formatCost(e.Cost))
	}

	cw.Flush()
	return cw.Error()
}
