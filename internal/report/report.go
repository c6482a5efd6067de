package report

import (
	"sort"
	"strings"

	"github.com/pointtaken/timesheet/internal/timeentry"
)

// The aggregation functions are pure: entries in, stats out. Costs are
// summed from the values frozen on each entry, never recomputed from a
// rate table.

type ConsultantStat struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// ProjectManagerStat carries no percentage; management time is reported
// absolutely, not as a share of itself.
type ProjectManagerStat struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

type CategoryStat struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

type MonthlySummary struct {
	Month   string  `json:"month"`
	Hours   float64 `json:"hours"`
	Cost    float64 `json:"cost"`
	Entries int     `json:"entries"`
}

type Totals struct {
	ConsultantHours float64 `json:"consultant_hours"`
	ConsultantCost  float64 `json:"consultant_cost"`
	ManagerHours    float64 `json:"manager_hours"`
	ManagerCost     float64 `json:"manager_cost"`
	TotalHours      float64 `json:"total_hours"`
	TotalCost       float64 `json:"total_cost"`
	EntryCount      int     `json:"entry_count"`
}

// FilterByMonths keeps entries whose YYYY-MM prefix is in the month
// set. The set may be non-contiguous. An empty set selects nothing.
func FilterByMonths(entries []timeentry.TimeEntry, months []string) []timeentry.TimeEntry {
	filtered := make([]timeentry.TimeEntry, 0, len(entries))
	for _, e := range entries {
		for _, m := range months {
			if strings.HasPrefix(e.Date, m) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

type bucket struct {
	hours float64
	cost  float64
}

// groupBy keeps first-appearance order so ties stay stable after the
// hours sort.
func groupBy(entries []timeentry.TimeEntry, key func(timeentry.TimeEntry) string) ([]string, map[string]*bucket) {
	order := make([]string, 0)
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		k := key(e)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
			order = append(order, k)
		}
		b.hours += e.Hours
		b.cost += e.Cost
	}
	return order, buckets
}

// ConsultantStats aggregates non-manager entries by consultant.
// Percentage is the share of all filtered non-manager hours; all
// percentages are zero when there are no hours.
func ConsultantStats(filtered []timeentry.TimeEntry) []ConsultantStat {
	var consultantEntries []timeentry.TimeEntry
	var totalHours float64
	for _, e := range filtered {
		if !e.IsProjectManager {
			consultantEntries = append(consultantEntries, e)
			totalHours += e.Hours
		}
	}

	order, buckets := groupBy(consultantEntries, func(e timeentry.TimeEntry) string { return e.Consultant })

	stats := make([]ConsultantStat, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		pct := 0.0
		if totalHours > 0 {
			pct = b.hours / totalHours * 100
		}
		stats = append(stats, ConsultantStat{Name: name, Hours: b.hours, Cost: b.cost, Percentage: pct})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Hours > stats[j].Hours })
	return stats
}

// ProjectManagerStats aggregates manager entries by name.
func ProjectManagerStats(filtered []timeentry.TimeEntry) []ProjectManagerStat {
	var managerEntries []timeentry.TimeEntry
	for _, e := range filtered {
		if e.IsProjectManager {
			managerEntries = append(managerEntries, e)
		}
	}

	order, buckets := groupBy(managerEntries, func(e timeentry.TimeEntry) string { return e.Consultant })

	stats := make([]ProjectManagerStat, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		stats = append(stats, ProjectManagerStat{Name: name, Hours: b.hours, Cost: b.cost})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Hours > stats[j].Hours })
	return stats
}

// CategoryStats aggregates all filtered entries that carry a category;
// entries without one are excluded, not bucketed as uncategorized.
// Percentage is the share of categorized hours only.
func CategoryStats(filtered []timeentry.TimeEntry) []CategoryStat {
	var categorized []timeentry.TimeEntry
	var totalHours float64
	for _, e := range filtered {
		if e.Category != "" {
			categorized = append(categorized, e)
			totalHours += e.Hours
		}
	}

	order, buckets := groupBy(categorized, func(e timeentry.TimeEntry) string { return e.Category })

	stats := make([]CategoryStat, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		pct := 0.0
		if totalHours > 0 {
			pct = b.hours / totalHours * 100
		}
		stats = append(stats, CategoryStat{Name: name, Hours: b.hours, Cost: b.cost, Percentage: pct})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Hours > stats[j].Hours })
	return stats
}

// MonthlyHistory aggregates the FULL entry set by month, ignoring any
// month filter, newest month first. Lexicographic descending on YYYY-MM
// is chronological descending.
func MonthlyHistory(entries []timeentry.TimeEntry) []MonthlySummary {
	counts := make(map[string]int)
	order, buckets := groupBy(entries, func(e timeentry.TimeEntry) string { return e.Month() })
	for _, e := range entries {
		counts[e.Month()]++
	}

	history := make([]MonthlySummary, 0, len(order))
	for _, month := range order {
		b := buckets[month]
		history = append(history, MonthlySummary{
			Month:   month,
			Hours:   b.hours,
			Cost:    b.cost,
			Entries: counts[month],
		})
	}

	sort.Slice(history, func(i, j int) bool { return history[i].Month > history[j].Month })
	return history
}

// Summarize totals the filtered entries split by consultant and
// manager work.
func Summarize(filtered []timeentry.TimeEntry) Totals {
	var t Totals
	for _, e := range filtered {
		if e.IsProjectManager {
			t.ManagerHours += e.Hours
			t.ManagerCost += e.Cost
		} else {
			t.ConsultantHours += e.Hours
			t.ConsultantCost += e.Cost
		}
		t.EntryCount++
	}
	t.TotalHours = t.ConsultantHours + t.ManagerHours
	t.TotalCost = t.ConsultantCost + t.ManagerCost
	return t
}
