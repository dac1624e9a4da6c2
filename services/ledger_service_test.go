package services

import (
	"testing"

	"lodge-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestQueryByDateRange(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewLedgerService(gdb)

	rows := sqlmock.NewRows([]string{"id", "kind", "amount", "method", "date", "time"}).
		AddRow(1, "rent", 500, "balance", "2026-09-01", "10:00").
		AddRow(2, "payment", 500, "cash", "2026-09-01", "10:01").
		AddRow(3, "expense", 250, "cash", "2026-09-02", "14:30")

	mock.ExpectQuery("SELECT \\* FROM `ledger_entries`").
		WithArgs("2026-09-01", "2026-09-02").
		WillReturnRows(rows)

	entries, err := svc.QueryByDateRange("2026-09-01", "2026-09-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Kind != models.EntryRent || entries[0].Amount != 500 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryByDateRangeValidation(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewLedgerService(gdb)

	if _, err := svc.QueryByDateRange("not-a-date", "2026-09-02"); err == nil {
		t.Fatal("expected rejection of malformed start date")
	}
	if _, err := svc.QueryByDateRange("2026-09-02", "2026-09-01"); err == nil {
		t.Fatal("expected rejection when end precedes start")
	}
}

func TestRecordExpenseValidation(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewLedgerService(gdb)

	base := ExpenseInput{
		Date:        "2026-09-01",
		Category:    "maintenance",
		Description: "Plumbing repair, room 17",
		Amount:      800,
		Method:      models.MethodCash,
	}

	t.Run("missing date", func(t *testing.T) {
		in := base
		in.Date = ""
		if _, err := svc.RecordExpense(in); err == nil {
			t.Fatal("expected rejection of missing date")
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		in := base
		in.Amount = 0
		if _, err := svc.RecordExpense(in); err == nil {
			t.Fatal("expected rejection of zero amount")
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		in := base
		in.Amount = -50
		if _, err := svc.RecordExpense(in); err == nil {
			t.Fatal("expected rejection of negative amount")
		}
	})

	t.Run("balance method", func(t *testing.T) {
		in := base
		in.Method = models.MethodBalance
		if _, err := svc.RecordExpense(in); err == nil {
			t.Fatal("expected rejection of balance-method expense")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		in := base
		in.Type = "monthly"
		if _, err := svc.RecordExpense(in); err == nil {
			t.Fatal("expected rejection of unknown expense type")
		}
	})
}

func TestValidateEntryHardRejections(t *testing.T) {
	cases := []struct {
		name  string
		entry models.LedgerEntry
	}{
		{"missing kind", models.LedgerEntry{Amount: 100, Method: models.MethodCash}},
		{"zero amount", models.LedgerEntry{Kind: models.EntryRent, Amount: 0, Method: models.MethodBalance}},
		{"negative amount", models.LedgerEntry{Kind: models.EntryPayment, Amount: -10, Method: models.MethodCash}},
		{"bad method", models.LedgerEntry{Kind: models.EntryPayment, Amount: 10, Method: "card"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateEntry(&tc.entry); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
