// Package stats computes summary statistics over an expense collection.
// All sums run on integer cents, so repeated runs over the same records
// always produce identical results.
package stats

import (
	"sort"
	"time"

	"expense-tracker/internal/models"
	"expense-tracker/internal/util"
)

// CategoryStat is the total spent in one category.
type CategoryStat struct {
	Category string     `json:"category"`
	Total    util.Cents `json:"total"`
	Count    int64      `json:"count"`
}

// MonthlyStat is the total spent in one calendar month (UTC).
type MonthlyStat struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Total util.Cents `json:"total"`
	Count int64      `json:"count"`
}

// Summary 汇总结果：总额、笔数、平均值 + 分类和月度统计
type Summary struct {
	Total         util.Cents     `json:"total"`
	Count         int64          `json:"count"`
	Average       util.Cents     `json:"average"`
	CategoryStats []CategoryStat `json:"categoryStats"`
	MonthlyStats  []MonthlyStat  `json:"monthlyStats"`
}

// Compute aggregates the given expenses in one pass.
//
// Category buckets cover only categories actually present and come back
// ordered by descending total (category name breaks ties). Monthly
// buckets are keyed by the UTC calendar month of the expense date and
// come back in chronological order. An empty input yields zero totals
// and an average of 0, not an error.
func Compute(expenses []models.Expense) Summary {
	summary := Summary{
		CategoryStats: make([]CategoryStat, 0),
		MonthlyStats:  make([]MonthlyStat, 0),
	}

	type monthKey struct {
		year  int
		month int
	}

	catMap := make(map[string]*CategoryStat)
	monthMap := make(map[monthKey]*MonthlyStat)

	for i := range expenses {
		e := &expenses[i]

		summary.Total += e.AmountCent
		summary.Count++

		cs, ok := catMap[e.Category]
		if !ok {
			cs = &CategoryStat{Category: e.Category}
			catMap[e.Category] = cs
		}
		cs.Total += e.AmountCent
		cs.Count++

		occurred := e.OccurredAt.In(time.UTC)
		key := monthKey{year: occurred.Year(), month: int(occurred.Month())}
		ms, ok := monthMap[key]
		if !ok {
			ms = &MonthlyStat{Year: key.year, Month: key.month}
			monthMap[key] = ms
		}
		ms.Total += e.AmountCent
		ms.Count++
	}

	if summary.Count > 0 {
		summary.Average = util.DivCents(summary.Total, summary.Count)
	}

	for _, cs := range catMap {
		summary.CategoryStats = append(summary.CategoryStats, *cs)
	}
	sort.Slice(summary.CategoryStats, func(i, j int) bool {
		a, b := summary.CategoryStats[i], summary.CategoryStats[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})

	for _, ms := range monthMap {
		summary.MonthlyStats = append(summary.MonthlyStats, *ms)
	}
	sort.Slice(summary.MonthlyStats, func(i, j int) bool {
		a, b := summary.MonthlyStats[i], summary.MonthlyStats[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return summary
}
