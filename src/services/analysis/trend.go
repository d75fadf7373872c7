package analysis

import (
	"reports/src/schemas"

	"github.com/shopspring/decimal"
)

type DayTotal struct {
	Date  string
	Total decimal.Decimal
}

// TrendAnalysis holds the best and worst sales day. Both are nil when there
// were no rows.
type TrendAnalysis struct {
	Highest *DayTotal
	Lowest  *DayTotal
}

// DailyTotals sums sales per date, keeping the order in which dates first
// appear in rows.
func DailyTotals(rows []schemas.SalesRow) []DayTotal {
	index := make(map[string]int, len(rows))
	totals := make([]DayTotal, 0, len(rows))
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			index[row.Date] = len(totals)
			totals = append(totals, DayTotal{Date: row.Date, Total: row.Total})
			continue
		}
		totals[i].Total = totals[i].Total.Add(row.Total)
	}
	return totals
}

// AnalyzeTrend finds the highest and lowest aggregated day. On ties the date
// seen first wins.
func AnalyzeTrend(rows []schemas.SalesRow) TrendAnalysis {
	var trend TrendAnalysis
	for _, day := range DailyTotals(rows) {
		day := day
		if trend.Highest == nil || day.Total.GreaterThan(trend.Highest.Total) {
			trend.Highest = &day
		}
		if trend.Lowest == nil || day.Total.LessThan(trend.Lowest.Total) {
			trend.Lowest = &day
		}
	}
	return trend
}

// SalesTotals returns the grand total and the mean per row.
func SalesTotals(rows []schemas.SalesRow) (total decimal.Decimal, average decimal.Decimal) {
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	if len(rows) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(rows))))
	}
	return total, average
}
