package domain

import "strconv"

// Nightly rates in whole rupees. Base prices cover two guests; each guest
// beyond two adds ExtraGuestCharge. The AC surcharge applies only within
// the premium AC room range and is already included in PremiumACBase.
const (
	LowCostBase   = 400
	MidRangeBase  = 500
	PremiumBase   = 1000
	PremiumACBase = 1600

	ExtraGuestCharge = 300
	ACSurcharge      = 600

	DefaultBase = MidRangeBase
)

func roomInt(roomNumber string) (int, bool) {
	n, err := strconv.Atoi(roomNumber)
	if err != nil {
		return 0, false
	}
	return n, true
}

// InACRange reports whether the room belongs to the premium AC range
// (202-205), the only rooms where the AC flag means anything.
func InACRange(roomNumber string) bool {
	n, ok := roomInt(roomNumber)
	return ok && n >= 202 && n <= 205
}

// Floor derives the floor from the room number prefix: "2xx" is the second
// floor, everything else the first.
func Floor(roomNumber string) string {
	if len(roomNumber) == 3 && roomNumber[0] == '2' {
		return "2"
	}
	return "1"
}

func basePrice(roomNumber string, acEnabled bool) int {
	n, ok := roomInt(roomNumber)
	if !ok {
		return DefaultBase
	}
	switch {
	case n >= 1 && n <= 5:
		return LowCostBase
	case n >= 13 && n <= 20, n >= 23 && n <= 27:
		return MidRangeBase
	case n >= 202 && n <= 205:
		if acEnabled {
			return PremiumACBase
		}
		return PremiumACBase - ACSurcharge
	case n >= 200 && n <= 228:
		return PremiumBase
	default:
		return DefaultBase
	}
}

// CalculatePrice is the room pricing policy: a pure function of the room
// number, guest count and AC flag. The AC flag is ignored outside the
// premium AC range.
func CalculatePrice(roomNumber string, guestCount int, acEnabled bool) int {
	price := basePrice(roomNumber, acEnabled)
	if guestCount > 2 {
		price += (guestCount - 2) * ExtraGuestCharge
	}
	return price
}
