package services

import (
	"strings"
	"testing"

	"lodge-backend/models"
)

func TestValidateCheckInPayLaterExclusivity(t *testing.T) {
	base := CheckInInput{
		Room:       "23",
		Name:       "Ravi Kumar",
		Mobile:     "9876543210",
		GuestCount: 2,
	}

	t.Run("amount with balance method rejected", func(t *testing.T) {
		in := base
		in.AmountPaid = 500
		in.Payment = models.MethodBalance
		err := validateCheckIn(in)
		if err == nil || err.Kind != ErrValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Message, "pay later") {
			t.Fatalf("unexpected message: %s", err.Message)
		}
	})

	t.Run("pay later with zero amount accepted", func(t *testing.T) {
		in := base
		in.AmountPaid = 0
		in.Payment = models.MethodBalance
		if err := validateCheckIn(in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cash with amount accepted", func(t *testing.T) {
		in := base
		in.AmountPaid = 500
		in.Payment = models.MethodCash
		if err := validateCheckIn(in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cash with zero amount rejected", func(t *testing.T) {
		in := base
		in.AmountPaid = 0
		in.Payment = models.MethodCash
		if err := validateCheckIn(in); err == nil {
			t.Fatal("expected validation error for zero cash payment")
		}
	})

	t.Run("missing guest name rejected", func(t *testing.T) {
		in := base
		in.Name = "  "
		in.Payment = models.MethodBalance
		if err := validateCheckIn(in); err == nil || err.Field != "name" {
			t.Fatalf("expected name validation error, got %v", err)
		}
	})
}

func TestCheckoutGate(t *testing.T) {
	t.Run("zero balance passes", func(t *testing.T) {
		if err := checkoutGate(0, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative balance always blocks", func(t *testing.T) {
		for _, settleLater := range []bool{false, true} {
			err := checkoutGate(-100, settleLater)
			if err == nil || err.Kind != ErrStateConflict {
				t.Fatalf("settleLater=%v: expected state conflict, got %v", settleLater, err)
			}
			if !strings.Contains(err.Message, "refund of ₹100") {
				t.Fatalf("message should name the refund amount: %s", err.Message)
			}
		}
	})

	t.Run("positive balance blocks without settle later", func(t *testing.T) {
		err := checkoutGate(850, false)
		if err == nil || err.Kind != ErrStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})

	t.Run("positive balance passes with settle later", func(t *testing.T) {
		if err := checkoutGate(850, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestValidatePaymentAgainstBalance(t *testing.T) {
	if err := validatePaymentAgainstBalance(300, 500); err != nil {
		t.Fatalf("partial payment should pass: %v", err)
	}
	if err := validatePaymentAgainstBalance(500, 500); err != nil {
		t.Fatalf("exact payment should pass: %v", err)
	}
	if err := validatePaymentAgainstBalance(0, 0); err != nil {
		t.Fatalf("zero on zero should be a no-op: %v", err)
	}
	if err := validatePaymentAgainstBalance(501, 500); err == nil {
		t.Fatal("overpayment should be rejected")
	}
	if err := validatePaymentAgainstBalance(100, 0); err == nil {
		t.Fatal("payment with no balance should be rejected")
	}
	if err := validatePaymentAgainstBalance(-1, 500); err == nil {
		t.Fatal("negative amount should be rejected")
	}
}

func TestValidateRefundAgainstBalance(t *testing.T) {
	if err := validateRefundAgainstBalance(100, -100); err != nil {
		t.Fatalf("full refund should pass: %v", err)
	}
	if err := validateRefundAgainstBalance(40, -100); err != nil {
		t.Fatalf("partial refund should pass: %v", err)
	}
	if err := validateRefundAgainstBalance(101, -100); err == nil {
		t.Fatal("refund above what is owed should be rejected")
	}
	if err := validateRefundAgainstBalance(100, 0); err == nil {
		t.Fatal("refund on zero balance should be rejected")
	}
	if err := validateRefundAgainstBalance(100, 200); err == nil {
		t.Fatal("refund on positive balance should be rejected")
	}
	if err := validateRefundAgainstBalance(0, -100); err == nil {
		t.Fatal("zero refund should be rejected")
	}
}

func TestValidateCollection(t *testing.T) {
	t.Run("amount plus discount within remaining", func(t *testing.T) {
		in := CollectInput{Amount: 500, Method: models.MethodCash, Discount: 100, DiscountReason: "goodwill"}
		if err := validateCollection(in, 850); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("exceeding remaining rejected", func(t *testing.T) {
		in := CollectInput{Amount: 800, Method: models.MethodCash, Discount: 100, DiscountReason: "goodwill"}
		if err := validateCollection(in, 850); err == nil {
			t.Fatal("expected rejection when amount+discount exceeds remaining")
		}
	})

	t.Run("discount needs a reason", func(t *testing.T) {
		in := CollectInput{Amount: 0, Discount: 100}
		if err := validateCollection(in, 850); err == nil || err.Field != "discount_reason" {
			t.Fatalf("expected discount_reason error, got %v", err)
		}
	})

	t.Run("balance method rejected for money", func(t *testing.T) {
		in := CollectInput{Amount: 100, Method: models.MethodBalance}
		if err := validateCollection(in, 850); err == nil {
			t.Fatal("expected method rejection")
		}
	})

	t.Run("nothing to apply rejected", func(t *testing.T) {
		if err := validateCollection(CollectInput{}, 850); err == nil {
			t.Fatal("expected rejection for empty collection")
		}
	})
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint", "2026-09-01", "2026-09-03", "2026-09-03", "2026-09-05", false},
		{"overlapping", "2026-09-01", "2026-09-04", "2026-09-03", "2026-09-05", true},
		{"contained", "2026-09-01", "2026-09-10", "2026-09-03", "2026-09-05", true},
		{"same start", "2026-09-01", "2026-09-02", "2026-09-01", "2026-09-05", true},
		{"open-ended vs later", "2026-09-01", "", "2026-09-02", "2026-09-04", false},
		{"open-ended same day", "2026-09-01", "", "2026-09-01", "2026-09-04", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("rangesOverlap(%q,%q,%q,%q) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestTotalsByKindAndRevenue(t *testing.T) {
	entries := []models.LedgerEntry{
		{Kind: models.EntryPayment, Amount: 500, Method: models.MethodCash},
		{Kind: models.EntryPayment, Amount: 1000, Method: models.MethodOnline},
		{Kind: models.EntryPayment, Amount: 300, Method: models.MethodBalance}, // booking advance carry, not takings
		{Kind: models.EntryAddOn, Amount: 120, Method: models.MethodCash},
		{Kind: models.EntryAddOn, Amount: 80, Method: models.MethodBalance},
		{Kind: models.EntryRefund, Amount: 100, Method: models.MethodCash},
		{Kind: models.EntryExpense, Amount: 250, Method: models.MethodCash, ExpenseType: models.ExpenseTransaction},
		{Kind: models.EntryExpense, Amount: 900, Method: models.MethodOnline, ExpenseType: models.ExpenseReport},
		{Kind: models.EntryRent, Amount: 500, Day: 1, Method: models.MethodBalance},
		{Kind: models.EntryRent, Amount: 500, Day: 2, Method: models.MethodBalance},
		{Kind: models.EntryRent, Amount: 500, Day: 3, Method: models.MethodBalance},
	}

	totals := TotalsByKind(entries)

	if totals.Cash != 620 {
		t.Fatalf("Cash = %d, want 620", totals.Cash)
	}
	if totals.Online != 1000 {
		t.Fatalf("Online = %d, want 1000", totals.Online)
	}
	if totals.AddOns != 200 {
		t.Fatalf("AddOns = %d, want 200", totals.AddOns)
	}
	if totals.Refunds != 100 {
		t.Fatalf("Refunds = %d, want 100", totals.Refunds)
	}
	if totals.TransactionExpenses != 250 || totals.ReportExpenses != 900 || totals.Expenses != 1150 {
		t.Fatalf("expenses = %d/%d/%d, want 250/900/1150",
			totals.TransactionExpenses, totals.ReportExpenses, totals.Expenses)
	}
	if totals.RenewalCount != 2 || totals.RenewalCharges != 1000 {
		t.Fatalf("renewals = %d entries ₹%d, want 2 entries ₹1000", totals.RenewalCount, totals.RenewalCharges)
	}

	// Revenue counts money in minus money out; report expenses stay out.
	want := 620 + 1000 - 100 - 250
	if got := totals.Revenue(); got != want {
		t.Fatalf("Revenue() = %d, want %d", got, want)
	}
}
