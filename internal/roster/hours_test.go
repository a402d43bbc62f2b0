package roster

import (
	"testing"
	"time"
)

func weekOfMarchSecond() Window {
	return WeekBounds(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
}

func shiftFor(employee EmployeeRef, id string, start time.Time, hours int) ShiftEvent {
	return ShiftEvent{
		ID:       id,
		Employee: employee,
		Start:    start,
		End:      start.Add(time.Duration(hours) * time.Hour),
	}
}

func TestTotalHours(t *testing.T) {
	alice := EmployeeRef{ID: "employee-1", Name: "Alice"}
	bob := EmployeeRef{ID: "employee-2", Name: "Bob"}
	window := weekOfMarchSecond()
	monday := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	t.Run("sums only the employee's contained shifts", func(t *testing.T) {
		store := NewEventStore()
		for _, e := range []ShiftEvent{
			shiftFor(alice, "a-mon", monday, 8),
			shiftFor(alice, "a-wed", monday.AddDate(0, 0, 2), 6),
			shiftFor(bob, "b-mon", monday, 8),
		} {
			if err := store.Upsert(e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := TotalHours(store, alice, window); got != 14.0 {
			t.Errorf("expected 14 hours for Alice, got %v", got)
		}
		if got := ShiftCount(store, alice, window); got != 2 {
			t.Errorf("expected 2 shifts for Alice, got %d", got)
		}
	})

	t.Run("shift straddling the window edge contributes nothing", func(t *testing.T) {
		store := NewEventStore()
		// Starts inside the viewed week but ends in the next one.
		sundayNight := time.Date(2026, time.March, 8, 22, 0, 0, 0, time.UTC)
		if err := store.Upsert(shiftFor(alice, "a-sun", sundayNight, 8)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := TotalHours(store, alice, window); got != 0 {
			t.Errorf("expected straddling shift to be excluded, got %v hours", got)
		}
	})

	t.Run("matches by id even when the name drifted", func(t *testing.T) {
		store := NewEventStore()
		renamed := EmployeeRef{ID: "employee-1", Name: "Alice Smith"}
		if err := store.Upsert(shiftFor(renamed, "a-mon", monday, 8)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := TotalHours(store, alice, window); got != 8.0 {
			t.Errorf("expected id match to survive a rename, got %v hours", got)
		}
	})

	t.Run("total is independent of insertion order", func(t *testing.T) {
		shifts := []ShiftEvent{
			shiftFor(alice, "a-1", monday, 4),
			shiftFor(alice, "a-2", monday.AddDate(0, 0, 1), 7),
			shiftFor(alice, "a-3", monday.AddDate(0, 0, 3), 5),
		}

		forward := NewEventStore()
		for _, e := range shifts {
			if err := forward.Upsert(e); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		reversed := NewEventStore()
		for i := len(shifts) - 1; i >= 0; i-- {
			if err := reversed.Upsert(shifts[i]); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if a, b := TotalHours(forward, alice, window), TotalHours(reversed, alice, window); a != b {
			t.Errorf("expected identical totals, got %v and %v", a, b)
		}
	})
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{8, "8.00"},
		{7.5, "7.50"},
		{0, "0.00"},
		{10.25, "10.25"},
	}
	for _, tc := range cases {
		if got := FormatHours(tc.hours); got != tc.want {
			t.Errorf("expected %q for %v hours, got %q", tc.want, tc.hours, got)
		}
	}
}

func TestShiftEventHours(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	event := ShiftEvent{Start: start, End: start.Add(7*time.Hour + 30*time.Minute)}
	if got := event.Hours(); got != 7.5 {
		t.Errorf("expected 7.5 hours, got %v", got)
	}
}

func TestDayShifts(t *testing.T) {
	alice := EmployeeRef{ID: "employee-1", Name: "Alice"}
	window := weekOfMarchSecond()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	store := NewEventStore()
	late := shiftFor(alice, "a-late", monday.Add(18*time.Hour), 4)
	early := shiftFor(alice, "a-early", monday.Add(9*time.Hour), 8)
	other := shiftFor(alice, "a-tue", monday.AddDate(0, 0, 1).Add(9*time.Hour), 8)
	for _, e := range []ShiftEvent{late, early, other} {
		if err := store.Upsert(e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := FormatDayShifts(store, alice, window, monday); got != "09:00 - 17:00, 18:00 - 22:00" {
		t.Errorf("expected shifts ordered by start, got %q", got)
	}
	if got := FormatDayShifts(store, alice, window, monday.AddDate(0, 0, 3)); got != "" {
		t.Errorf("expected empty cell for a day off, got %q", got)
	}
}

func TestWindowDays(t *testing.T) {
	days := WindowDays(weekOfMarchSecond())
	if len(days) != 7 {
		t.Fatalf("expected 7 days in a week window, got %d", len(days))
	}
	if days[0].Day() != 2 || days[6].Day() != 8 {
		t.Errorf("expected days 2 through 8, got %v to %v", days[0], days[6])
	}
}
