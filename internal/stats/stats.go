// Package stats derives consumption figures from an ordered series of
// cumulative meter readings. Everything is recomputed from scratch per
// report, so corrections to history show up on the next request without
// any incremental bookkeeping.
package stats

import (
	"github.com/shopspring/decimal"

	"meter-bot/internal/models"
)

// Row is one line of the daily report. Consumption and Average are nil on
// the first row: there is no prior reading to diff against.
type Row struct {
	Date        string
	Reading     int64 // display rounding only, the stored value keeps full precision
	Consumption *int64
	Average     *int64
}

// MonthRow aggregates one calendar month. Consumption is nil when the
// month holds a single reading: that is insufficient data, not zero usage.
type MonthRow struct {
	Month       string // YYYY-MM
	Consumption *int64
}

// round is half-away-from-zero to the nearest integer, the report-surface
// rounding contract. decimal.Round does exactly that.
func round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Daily turns a date-ascending series into report rows. Each row after
// the first carries the delta against the previous reading and the
// cumulative average of all deltas so far.
func Daily(series []models.Reading) []Row {
	rows := make([]Row, 0, len(series))
	sum := decimal.Zero
	for i, r := range series {
		value := decimal.NewFromFloat(r.Value)
		row := Row{Date: r.Date, Reading: round(value)}
		if i > 0 {
			prev := decimal.NewFromFloat(series[i-1].Value)
			c := round(value.Sub(prev))
			// the average is over the rounded consumptions, not the raw deltas
			sum = sum.Add(decimal.NewFromInt(c))
			avg := round(sum.Div(decimal.NewFromInt(int64(i))))
			row.Consumption = &c
			row.Average = &avg
		}
		rows = append(rows, row)
	}
	return rows
}

// Monthly groups the series by YYYY-MM; a month's consumption is its last
// reading minus its first. Months keep series order (date ascending).
func Monthly(series []models.Reading) []MonthRow {
	var rows []MonthRow
	idx := make(map[string]int)
	first := make(map[string]decimal.Decimal)
	for _, r := range series {
		if len(r.Date) < 7 {
			continue
		}
		month := r.Date[:7]
		value := decimal.NewFromFloat(r.Value)
		i, seen := idx[month]
		if !seen {
			idx[month] = len(rows)
			first[month] = value
			rows = append(rows, MonthRow{Month: month})
			continue
		}
		c := round(value.Sub(first[month]))
		rows[i].Consumption = &c
	}
	return rows
}
