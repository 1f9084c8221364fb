// Package report builds the daily and monthly reconciliation views over
// stored entries. Fraction sums are accumulated in integer hundredths so the
// monthly totals always reconcile exactly with the daily rows regardless of
// summation order.
package report

import (
	"sort"
	"time"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/storage"
)

// DailyRow is the fraction sum for one (date, site, kst) group.
type DailyRow struct {
	Date        time.Time
	SiteName    string
	Kst         string
	FractionSum float64
}

// MonthlyRow is the fraction sum for one (site, kst) group over a month.
type MonthlyRow struct {
	SiteName    string
	Kst         string
	FractionSum float64
}

type Aggregator struct {
	store *storage.SQLiteStore
}

func NewAggregator(store *storage.SQLiteStore) *Aggregator {
	return &Aggregator{store: store}
}

func (a *Aggregator) DailySummary(year int, month time.Month) ([]DailyRow, error) {
	entries, err := a.store.EntriesInMonth(year, month)
	if err != nil {
		return nil, err
	}
	return BuildDailyRows(entries), nil
}

func (a *Aggregator) MonthlyTotals(year int, month time.Month) ([]MonthlyRow, error) {
	entries, err := a.store.EntriesInMonth(year, month)
	if err != nil {
		return nil, err
	}
	return BuildMonthlyRows(entries), nil
}

type dailyKey struct {
	date     string
	siteName string
	kst      string
}

type monthlyKey struct {
	siteName string
	kst      string
}

// BuildDailyRows groups entries by (date, site, kst) and sums fractions,
// sorted by date, site and kst ascending.
func BuildDailyRows(entries []logentry.Entry) []DailyRow {
	sums := make(map[dailyKey]int64, len(entries))
	dates := make(map[string]time.Time, 31)
	for _, entry := range entries {
		key := dailyKey{
			date:     timeutil.FormatDate(entry.Date),
			siteName: entry.SiteName,
			kst:      entry.Kst,
		}
		sums[key] += Hundredths(entry.DayFraction)
		dates[key.date] = timeutil.StartOfDay(entry.Date)
	}

	keys := make([]dailyKey, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		if keys[i].siteName != keys[j].siteName {
			return keys[i].siteName < keys[j].siteName
		}
		return keys[i].kst < keys[j].kst
	})

	rows := make([]DailyRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, DailyRow{
			Date:        dates[key.date],
			SiteName:    key.siteName,
			Kst:         key.kst,
			FractionSum: FromHundredths(sums[key]),
		})
	}
	return rows
}

// BuildMonthlyRows groups entries by (site, kst) over the whole input and sums
// fractions, sorted by site and kst ascending.
func BuildMonthlyRows(entries []logentry.Entry) []MonthlyRow {
	sums := make(map[monthlyKey]int64, len(entries))
	for _, entry := range entries {
		key := monthlyKey{siteName: entry.SiteName, kst: entry.Kst}
		sums[key] += Hundredths(entry.DayFraction)
	}

	keys := make([]monthlyKey, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].siteName != keys[j].siteName {
			return keys[i].siteName < keys[j].siteName
		}
		return keys[i].kst < keys[j].kst
	})

	rows := make([]MonthlyRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, MonthlyRow{
			SiteName:    key.siteName,
			Kst:         key.kst,
			FractionSum: FromHundredths(sums[key]),
		})
	}
	return rows
}

// Hundredths converts a 2-decimal day fraction to an exact integer count.
func Hundredths(fraction float64) int64 {
	if fraction >= 0 {
		return int64(fraction*100 + 0.5)
	}
	return int64(fraction*100 - 0.5)
}

func FromHundredths(value int64) float64 {
	return float64(value) / 100.0
}
