package roster

import "time"

// ViewMode selects how wide the active calendar viewport is.
type ViewMode string

const (
	ViewWeek ViewMode = "week"
	ViewDay  ViewMode = "day"
)

// Direction moves the viewport anchor backwards or forwards.
type Direction int

const (
	Back    Direction = -1
	Forward Direction = 1
)

// Window is the active viewport's inclusive start/end instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the event lies entirely inside the window: both
// its start and end must fall within the bounds. An event merely overlapping
// the window does not count.
func (w Window) Contains(e ShiftEvent) bool {
	return !e.Start.Before(w.Start) && !e.End.After(w.End)
}

// WeekBounds returns the Monday-through-Sunday week containing anchor. The
// start is the most recent Monday at 00:00; Sunday anchors roll back six
// days. The end is the following Sunday at 23:59:59.999.
func WeekBounds(anchor time.Time) Window {
	start := startOfDay(anchor)
	weekday := int(start.Weekday())
	// Go numbers Sunday as 0; shift so Monday opens the week.
	offset := (weekday + 6) % 7
	start = start.AddDate(0, 0, -offset)
	return Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
}

// DayBounds returns anchor's own calendar day as a full 24h window.
func DayBounds(anchor time.Time) Window {
	start := startOfDay(anchor)
	return Window{Start: start, End: endOfDay(start)}
}

// Navigate moves anchor one step in the given direction: seven days in week
// mode, one day in day mode.
func Navigate(anchor time.Time, mode ViewMode, dir Direction) time.Time {
	days := 7
	if mode == ViewDay {
		days = 1
	}
	return anchor.AddDate(0, 0, days*int(dir))
}

// Bounds resolves the window for anchor under the given view mode.
func Bounds(anchor time.Time, mode ViewMode) Window {
	if mode == ViewDay {
		return DayBounds(anchor)
	}
	return WeekBounds(anchor)
}

// RawRange is the shape the calendar surface reports range changes in:
// either an ordered sequence of the dates in view, or an explicit pair.
type RawRange struct {
	Dates []time.Time
	Start time.Time
	End   time.Time
}

// NormalizeRange canonicalizes a raw range report. A non-empty date sequence
// yields its first and last elements; otherwise the explicit pair is
// returned verbatim.
func NormalizeRange(raw RawRange) Window {
	if len(raw.Dates) > 0 {
		return Window{Start: raw.Dates[0], End: raw.Dates[len(raw.Dates)-1]}
	}
	return Window{Start: raw.Start, End: raw.End}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
