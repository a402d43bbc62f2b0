package roster

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const millisPerHour = 3_600_000

// Hours converts the event's span to fractional hours. The accumulation is
// plain float64 arithmetic; rounding happens only at presentation time.
func (e ShiftEvent) Hours() float64 {
	return float64(e.End.Sub(e.Start).Milliseconds()) / millisPerHour
}

// TotalHours sums the fractional hours of the events assigned to the
// employee whose start and end both fall inside the window. The containment
// rule is deliberate: a shift straddling the window edge contributes nothing.
func TotalHours(store *EventStore, employee EmployeeRef, window Window) float64 {
	total := 0.0
	for _, event := range contained(store, employee, window) {
		total += event.Hours()
	}
	return total
}

// ShiftCount counts the events matched by the same containment rule as
// TotalHours.
func ShiftCount(store *EventStore, employee EmployeeRef, window Window) int {
	return len(contained(store, employee, window))
}

// FormatHours renders fractional hours with two decimals for display.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// DayShifts lists one employee's shifts on a single calendar day, rendered
// the way the preview table shows them ("09:00 - 17:00"), ordered by start.
func DayShifts(store *EventStore, employee EmployeeRef, window Window, day time.Time) []string {
	events := contained(store, employee, window)
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	shifts := make([]string, 0, len(events))
	for _, event := range events {
		if !sameDay(event.Start, day) {
			continue
		}
		shifts = append(shifts, fmt.Sprintf("%s - %s", event.Start.Format("15:04"), event.End.Format("15:04")))
	}
	return shifts
}

// FormatDayShifts joins an employee's shifts for a day into one table cell.
func FormatDayShifts(store *EventStore, employee EmployeeRef, window Window, day time.Time) string {
	return strings.Join(DayShifts(store, employee, window, day), ", ")
}

// WindowDays enumerates the calendar days covered by the window, for laying
// out the preview table columns.
func WindowDays(window Window) []time.Time {
	days := make([]time.Time, 0, 7)
	for day := startOfDay(window.Start); !day.After(window.End); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func contained(store *EventStore, employee EmployeeRef, window Window) []ShiftEvent {
	return store.Query(func(event ShiftEvent) bool {
		return event.Employee.Matches(employee) && window.Contains(event)
	})
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
