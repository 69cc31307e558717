package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Reporter derives per-day and per-category totals from the interval
// history. Both queries are scoped to a single user and count only closed,
// categorized intervals; open intervals contribute zero.
type Reporter struct {
	intervals IntervalRepository
	logger    *slog.Logger
}

// NewReporter creates a new reporter.
func NewReporter(intervals IntervalRepository, logger *slog.Logger) *Reporter {
	return &Reporter{intervals: intervals, logger: logger}
}

// DurationsForDay sums closed, categorized intervals whose start falls on
// the same day as date. The grouping key is the start day: an interval
// crossing midnight counts entirely toward the day it started.
func (r *Reporter) DurationsForDay(ctx context.Context, username string, date time.Time) (map[TaskCategory]time.Duration, error) {
	list, err := r.intervals.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing intervals: %w", err)
	}

	day := startOfDay(date)
	totals := zeroTotals()
	for _, iv := range list {
		if iv.Open() || iv.TaskCategory == nil {
			continue
		}
		if !startOfDay(iv.StartTime).Equal(day) {
			continue
		}
		totals[*iv.TaskCategory] += iv.Duration()
	}
	return totals, nil
}

// TotalDurations sums all closed, categorized intervals for the user.
// Every category is present in the result, zero when unused.
func (r *Reporter) TotalDurations(ctx context.Context, username string) (map[TaskCategory]time.Duration, error) {
	list, err := r.intervals.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing intervals: %w", err)
	}

	totals := zeroTotals()
	for _, iv := range list {
		if iv.Open() || iv.TaskCategory == nil {
			continue
		}
		totals[*iv.TaskCategory] += iv.Duration()
	}
	return totals, nil
}

// DaysWithRecords returns the distinct days in the given month on which at
// least one of the user's intervals started, open or closed. This feeds the
// calendar grid's record markers.
func (r *Reporter) DaysWithRecords(ctx context.Context, username string, month time.Time) ([]time.Time, error) {
	list, err := r.intervals.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("listing intervals: %w", err)
	}

	seen := make(map[time.Time]struct{})
	for _, iv := range list {
		if iv.StartTime.Year() != month.Year() || iv.StartTime.Month() != month.Month() {
			continue
		}
		seen[startOfDay(iv.StartTime)] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func zeroTotals() map[TaskCategory]time.Duration {
	totals := make(map[TaskCategory]time.Duration, len(Categories()))
	for _, c := range Categories() {
		totals[c] = 0
	}
	return totals
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
