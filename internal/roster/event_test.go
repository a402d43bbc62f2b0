package roster

import (
	"testing"
	"time"
)

func TestEmployeeRefMatches(t *testing.T) {
	cases := []struct {
		name string
		a, b EmployeeRef
		want bool
	}{
		{"same id", EmployeeRef{ID: "e1", Name: "Alice"}, EmployeeRef{ID: "e1", Name: "Alice Smith"}, true},
		{"different id", EmployeeRef{ID: "e1", Name: "Alice"}, EmployeeRef{ID: "e2", Name: "Alice"}, false},
		{"name fallback when one side lacks an id", EmployeeRef{Name: "Alice"}, EmployeeRef{ID: "e1", Name: "Alice"}, true},
		{"name fallback mismatch", EmployeeRef{Name: "Alice"}, EmployeeRef{Name: "Bob"}, false},
		{"both empty never match", EmployeeRef{}, EmployeeRef{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Matches(tc.b); got != tc.want {
				t.Errorf("expected %v matching %+v against %+v", tc.want, tc.a, tc.b)
			}
		})
	}
}

func TestShiftEventValidate(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	valid := ShiftEvent{ID: "e1", Start: start, End: start.Add(8 * time.Hour)}

	if err := valid.Validate(); err != nil {
		t.Errorf("expected a valid event, got %v", err)
	}

	missingID := valid
	missingID.ID = ""
	if err := missingID.Validate(); err == nil {
		t.Error("expected an error for a missing id")
	}

	inverted := valid
	inverted.End = start.Add(-time.Hour)
	if err := inverted.Validate(); err == nil {
		t.Error("expected an error for inverted times")
	}

	zeroLength := valid
	zeroLength.End = start
	if err := zeroLength.Validate(); err == nil {
		t.Error("expected an error for a zero-length event")
	}

	badColor := valid
	badColor.Color = "magenta"
	if err := badColor.Validate(); err == nil {
		t.Error("expected an error for an unknown color tag")
	}
}

func TestShiftEventEqual(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	event := ShiftEvent{ID: "e1", Start: start, End: start.Add(8 * time.Hour)}

	if !event.Equal(event) {
		t.Error("expected an event to equal itself")
	}

	relocated := event
	relocated.Start = event.Start.In(time.FixedZone("plus-one", 60*60))
	if !event.Equal(relocated) {
		t.Error("expected the same instant in another zone to compare equal")
	}

	moved := event
	moved.Start = event.Start.Add(time.Hour)
	if event.Equal(moved) {
		t.Error("expected a moved event to compare unequal")
	}
}
