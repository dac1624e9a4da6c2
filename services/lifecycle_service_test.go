package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lodge-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func errKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected a typed service error, got %T: %v", err, err)
	}
	return svcErr.Kind
}

func TestCheckInUnknownRoomRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}))
	mock.ExpectRollback()

	_, err := svc.CheckIn(CheckInInput{
		Room:       "999",
		Name:       "Ravi Kumar",
		Mobile:     "9876543210",
		GuestCount: 2,
		AmountPaid: 500,
		Payment:    models.MethodCash,
	})
	if err == nil {
		t.Fatal("expected an error for an unknown room")
	}
	if kind := errKind(t, err); kind != ErrNotFound {
		t.Fatalf("error kind = %s, want %s", kind, ErrNotFound)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckInOccupiedRoomRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(1, "23", models.RoomOccupied))
	mock.ExpectRollback()

	_, err := svc.CheckIn(CheckInInput{
		Room:       "23",
		Name:       "Ravi Kumar",
		Mobile:     "9876543210",
		GuestCount: 2,
		AmountPaid: 500,
		Payment:    models.MethodCash,
	})
	if err == nil {
		t.Fatal("expected an error for an occupied room")
	}
	if kind := errKind(t, err); kind != ErrStateConflict {
		t.Fatalf("error kind = %s, want %s", kind, ErrStateConflict)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutVacantRoomRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(1, "23", models.RoomVacant))
	mock.ExpectRollback()

	_, err := svc.Checkout("23", false, "")
	if err == nil {
		t.Fatal("expected an error for a vacant room")
	}
	if kind := errKind(t, err); kind != ErrStateConflict {
		t.Fatalf("error kind = %s, want %s", kind, ErrStateConflict)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckInAmountAbovePriceRejected(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	// Room 23 prices at 500; paying 600 up front must be rejected before
	// any database work.
	_, err := svc.CheckIn(CheckInInput{
		Room:       "23",
		Name:       "Ravi Kumar",
		Mobile:     "9876543210",
		GuestCount: 2,
		AmountPaid: 600,
		Payment:    models.MethodCash,
	})
	if err == nil {
		t.Fatal("expected an error when paying above the room price")
	}
	if kind := errKind(t, err); kind != ErrValidation {
		t.Fatalf("error kind = %s, want %s", kind, ErrValidation)
	}
}

func TestRenewBeforeExpiryRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	// Day 2 rent falls due 24h after the check-in instant; at 23h the
	// renewal must be refused and nothing written.
	checkin := time.Date(2026, 9, 1, 12, 0, 0, 0, lodgeTZ)
	svc.Now = fixedClock(checkin.Add(23 * time.Hour))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "current_episode_id"}).
			AddRow(1, "23", models.RoomOccupied, 7))
	mock.ExpectQuery("SELECT \\* FROM `occupancy_episodes`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_number", "guest_name", "checkin_time", "renewal_count", "price", "balance", "version",
		}).AddRow(7, "23", "Ravi Kumar", checkin, 0, 500, 500, 1))
	mock.ExpectRollback()

	_, err := svc.Renew("23", 0)
	if err == nil {
		t.Fatal("expected an error renewing before the day is up")
	}
	if kind := errKind(t, err); kind != ErrStateConflict {
		t.Fatalf("error kind = %s, want %s", kind, ErrStateConflict)
	}
	if !strings.Contains(err.Error(), "cannot renew") {
		t.Fatalf("error %q does not say the renewal is early", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransferSameRoomRejected(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewLifecycleService(gdb, NewLedgerService(gdb))

	err := svc.TransferRoom(TransferInput{FromRoom: "23", ToRoom: "23"})
	if err == nil {
		t.Fatal("expected an error transferring a room to itself")
	}
	if kind := errKind(t, err); kind != ErrValidation {
		t.Fatalf("error kind = %s, want %s", kind, ErrValidation)
	}
}
