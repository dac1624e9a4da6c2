package domain

import "time"

// RenewalStatus is a pure projection of where a stay sits in its daily rent
// cycle. Renewal N falls due exactly N days after the original check-in
// instant, never N days after the previous renewal, so late renewals do not
// drift the billing day.
type RenewalStatus struct {
	DayNumber   int       `json:"dayNumber"`
	DueAt       time.Time `json:"dueAt"`
	HoursLeft   int       `json:"hoursLeft"`
	MinutesLeft int       `json:"minutesLeft"`
	Expired     bool      `json:"expired"`
}

// Renewal computes the renewal status for an episode checked in at checkin
// with renewalCount renewals already recorded, as of now. A room is
// renewal-eligible exactly when Expired is true.
func Renewal(checkin time.Time, renewalCount int, now time.Time) RenewalStatus {
	dayNumber := renewalCount + 1
	dueAt := checkin.AddDate(0, 0, dayNumber)

	left := dueAt.Sub(now)
	expired := left <= 0

	status := RenewalStatus{
		DayNumber: dayNumber,
		DueAt:     dueAt,
		Expired:   expired,
	}
	if !expired {
		status.HoursLeft = int(left.Hours())
		status.MinutesLeft = int(left.Minutes()) % 60
	}
	return status
}
