package domain

import (
	"testing"
	"time"
)

func TestRenewalAnchoredToCheckin(t *testing.T) {
	checkin := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	for n := 0; n < 5; n++ {
		due := checkin.AddDate(0, 0, n+1)

		at := Renewal(checkin, n, due)
		if !at.Expired {
			t.Errorf("renewal %d should be due exactly %d days after check-in", n, n+1)
		}
		if !at.DueAt.Equal(due) {
			t.Errorf("renewal %d DueAt = %v, want %v", n, at.DueAt, due)
		}
		if at.DayNumber != n+1 {
			t.Errorf("renewal %d DayNumber = %d, want %d", n, at.DayNumber, n+1)
		}

		before := Renewal(checkin, n, due.Add(-time.Minute))
		if before.Expired {
			t.Errorf("renewal %d must not be due one minute early", n)
		}
	}
}

func TestRenewalTimeLeft(t *testing.T) {
	checkin := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	// Fresh episode, 23 hours in: one hour to go.
	st := Renewal(checkin, 0, checkin.Add(23*time.Hour))
	if st.Expired {
		t.Fatalf("day 1 renewal must not be available at 23h")
	}
	if st.HoursLeft != 1 || st.MinutesLeft != 0 {
		t.Errorf("at 23h got %dh %dm left, want 1h 0m", st.HoursLeft, st.MinutesLeft)
	}

	// 25 hours in: renewable.
	st = Renewal(checkin, 0, checkin.Add(25*time.Hour))
	if !st.Expired {
		t.Fatalf("day 1 renewal must be available at 25h")
	}
	if st.HoursLeft != 0 || st.MinutesLeft != 0 {
		t.Errorf("expired status reports %dh %dm left, want zeros", st.HoursLeft, st.MinutesLeft)
	}

	// Renewal processed late still anchors day 2 to the check-in instant.
	st = Renewal(checkin, 1, checkin.Add(30*time.Hour))
	if st.Expired {
		t.Fatalf("day 2 renewal is not due at 30h")
	}
	if want := checkin.AddDate(0, 0, 2); !st.DueAt.Equal(want) {
		t.Errorf("day 2 DueAt = %v, want %v", st.DueAt, want)
	}
}
