package domain

import "testing"

func TestCalculatePrice(t *testing.T) {
	cases := []struct {
		name   string
		room   string
		guests int
		ac     bool
		want   int
	}{
		{"low cost two guests", "3", 2, false, 400},
		{"first floor mid range", "23", 2, false, 500},
		{"mid range upper block", "17", 2, false, 500},
		{"premium second floor", "210", 2, false, 1000},
		{"premium ac on", "203", 2, true, 1600},
		{"premium ac off", "203", 2, false, 1000},
		{"premium ac three guests", "203", 3, true, 1900},
		{"extra guests stack", "210", 4, false, 1600},
		{"ac flag ignored outside range", "210", 2, true, 1000},
		{"unknown room falls back", "99", 2, false, 500},
		{"non numeric room falls back", "annex", 2, false, 500},
		{"single guest pays two guest base", "23", 1, false, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePrice(tc.room, tc.guests, tc.ac)
			if got != tc.want {
				t.Errorf("CalculatePrice(%q, %d, %v) = %d, want %d", tc.room, tc.guests, tc.ac, got, tc.want)
			}
		})
	}
}

func TestInACRange(t *testing.T) {
	for room, want := range map[string]bool{
		"201": false, "202": true, "205": true, "206": false, "23": false, "": false,
	} {
		if got := InACRange(room); got != want {
			t.Errorf("InACRange(%q) = %v, want %v", room, got, want)
		}
	}
}

func TestFloor(t *testing.T) {
	if Floor("203") != "2" {
		t.Errorf("room 203 should be on floor 2")
	}
	if Floor("23") != "1" {
		t.Errorf("room 23 should be on floor 1")
	}
	if Floor("5") != "1" {
		t.Errorf("room 5 should be on floor 1")
	}
}
