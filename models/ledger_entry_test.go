package models

import "testing"

// applySequence folds entries into a balance the way the services do.
func applySequence(entries []LedgerEntry) int {
	balance := 0
	for i := range entries {
		balance += entries[i].SignedAmount()
	}
	return balance
}

func TestSignedAmountByKind(t *testing.T) {
	cases := []struct {
		name  string
		entry LedgerEntry
		want  int
	}{
		{"rent charges", LedgerEntry{Kind: EntryRent, Amount: 500, Method: MethodBalance}, 500},
		{"addon on balance charges", LedgerEntry{Kind: EntryAddOn, Amount: 120, Method: MethodBalance}, 120},
		{"addon paid cash settles immediately", LedgerEntry{Kind: EntryAddOn, Amount: 120, Method: MethodCash}, 0},
		{"addon paid online settles immediately", LedgerEntry{Kind: EntryAddOn, Amount: 120, Method: MethodOnline}, 0},
		{"discount reduces", LedgerEntry{Kind: EntryDiscount, Amount: 50, Method: MethodBalance}, -50},
		{"payment reduces", LedgerEntry{Kind: EntryPayment, Amount: 300, Method: MethodCash}, -300},
		{"settlement transfer reduces", LedgerEntry{Kind: EntrySettlement, Amount: 200, Method: MethodBalance}, -200},
		{"refund restores", LedgerEntry{Kind: EntryRefund, Amount: 100, Method: MethodCash}, 100},
		{"expense is episode-neutral", LedgerEntry{Kind: EntryExpense, Amount: 900, Method: MethodCash}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.SignedAmount(); got != tc.want {
				t.Fatalf("SignedAmount() = %d, want %d", got, tc.want)
			}
		})
	}
}

// The balance of a stay must always equal the signed sum of its entries.
// Replays the common front-desk sequences and checks the final balance.
func TestBalanceEqualsSignedSum(t *testing.T) {
	cases := []struct {
		name    string
		entries []LedgerEntry
		want    int
	}{
		{
			"checkin paid in full",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 500, Method: MethodBalance, Day: 1},
				{Kind: EntryPayment, Amount: 500, Method: MethodCash},
			},
			0,
		},
		{
			"pay later then renewal",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 1000, Method: MethodBalance, Day: 1},
				{Kind: EntryRent, Amount: 1000, Method: MethodBalance, Day: 2},
			},
			2000,
		},
		{
			"discount overshoots into refund territory",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 500, Method: MethodBalance, Day: 1},
				{Kind: EntryPayment, Amount: 500, Method: MethodOnline},
				{Kind: EntryDiscount, Amount: 100, Method: MethodBalance},
			},
			-100,
		},
		{
			"refund cancels the negative balance",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 500, Method: MethodBalance, Day: 1},
				{Kind: EntryPayment, Amount: 500, Method: MethodOnline},
				{Kind: EntryDiscount, Amount: 100, Method: MethodBalance},
				{Kind: EntryRefund, Amount: 100, Method: MethodCash},
			},
			0,
		},
		{
			"settle later clears the episode",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 1000, Method: MethodBalance, Day: 1},
				{Kind: EntryAddOn, Amount: 250, Method: MethodBalance},
				{Kind: EntryPayment, Amount: 400, Method: MethodCash},
				{Kind: EntrySettlement, Amount: 850, Method: MethodBalance},
			},
			0,
		},
		{
			"booking conversion with advance and payment now",
			[]LedgerEntry{
				{Kind: EntryRent, Amount: 1500, Method: MethodBalance, Day: 1},
				{Kind: EntryPayment, Amount: 500, Method: MethodBalance}, // advance carried over
				{Kind: EntryPayment, Amount: 700, Method: MethodCash},
			},
			300,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := applySequence(tc.entries); got != tc.want {
				t.Fatalf("signed sum = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{MethodCash, MethodOnline, MethodBalance} {
		if !ValidMethod(m) {
			t.Fatalf("ValidMethod(%q) = false, want true", m)
		}
	}
	for _, m := range []string{"", "card", "CASH", "upi"} {
		if ValidMethod(m) {
			t.Fatalf("ValidMethod(%q) = true, want false", m)
		}
	}
}
