// Package agenda derives calendar views from a raw event list: filtering,
// the 7-day visible window, per-day buckets and the aggregate counters. All
// functions are pure; the current time is always an explicit parameter.
package agenda

import (
	"strings"
	"time"

	"github.com/Griffon01/borelli-advocacia/internal/model"
)

// DateLayout is the backend's calendar date format. Day matching is literal
// string comparison against dates in this layout, with no zone conversion.
const DateLayout = "2006-01-02"

// AllTypes is the type filter value that matches every event.
const AllTypes model.EventType = "all"

// Filter is the UI filter state applied to the event list.
type Filter struct {
	Type   model.EventType
	Search string
}

// Matches reports whether the event passes the filter: the type must match
// (or the filter be AllTypes) and the search text must appear in the title
// or client name, case-insensitive. Empty search matches everything.
func (f Filter) Matches(e model.Event) bool {
	if f.Type != "" && f.Type != AllTypes && e.Type != f.Type {
		return false
	}
	search := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.ClientName), search)
}

// Apply returns the events passing the filter, in arrival order.
func (f Filter) Apply(events []model.Event) []model.Event {
	filtered := make([]model.Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// WeekOf returns the 7 consecutive days of the week containing anchor. The
// week starts on the day obtained by subtracting the anchor's weekday index,
// independent of locale.
func WeekOf(anchor time.Time) [7]time.Time {
	start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))

	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// DayKey formats a day as the backend's date string.
func DayKey(day time.Time) string {
	return day.Format(DateLayout)
}

// EventsOn returns the events whose date string equals the given day's,
// preserving arrival order.
func EventsOn(events []model.Event, day time.Time) []model.Event {
	key := DayKey(day)
	var bucket []model.Event
	for _, e := range events {
		if e.Date == key {
			bucket = append(bucket, e)
		}
	}
	return bucket
}

// IsToday reports whether day falls on the same calendar date as now,
// regardless of time-of-day.
func IsToday(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Stats are the dashboard counters, computed over the filtered set. Status
// is single-valued, so Total equals Pending+Urgent+Done plus the remaining
// statuses.
type Stats struct {
	Total   int
	Pending int
	Urgent  int
	Done    int
}

// ComputeStats tallies the counters for the given events.
func ComputeStats(events []model.Event) Stats {
	stats := Stats{Total: len(events)}
	for _, e := range events {
		switch e.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusUrgent:
			stats.Urgent++
		case model.StatusDone:
			stats.Done++
		}
	}
	return stats
}

// Diligences returns the events of type diligence, preserving order.
func Diligences(events []model.Event) []model.Event {
	var out []model.Event
	for _, e := range events {
		if e.Type == model.TypeDiligence {
			out = append(out, e)
		}
	}
	return out
}

// Workload is a team member's event load for the roster view.
type Workload struct {
	Total   int
	Pending int
}

// MemberWorkload counts the events assigned to the member. Assignment is
// assignee-id matching, not ownership.
func MemberWorkload(events []model.Event, memberID int64) Workload {
	var w Workload
	for _, e := range events {
		if !e.AssignedTo(memberID) {
			continue
		}
		w.Total++
		if e.Status == model.StatusPending {
			w.Pending++
		}
	}
	return w
}
