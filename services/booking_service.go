package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService manages advance reservations: future-dated promises that
// become occupancy only through an explicit conversion.
type BookingService struct {
	DB        *gorm.DB
	Lifecycle *LifecycleService
	Now       func() time.Time
}

func NewBookingService(db *gorm.DB, lifecycle *LifecycleService) *BookingService {
	return &BookingService{DB: db, Lifecycle: lifecycle, Now: time.Now}
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookingInput is the create/update payload.
type BookingInput struct {
	RoomNumber   string `json:"room"`
	GuestName    string `json:"name"`
	GuestMobile  string `json:"mobile"`
	GuestCount   int    `json:"guests"`
	CheckInDate  string `json:"checkin_date"`
	CheckOutDate string `json:"checkout_date"`
	TotalAmount  int    `json:"total_amount"`
	PaidAmount   int    `json:"paid_amount"`
	Payment      string `json:"payment"`
	Notes        string `json:"notes"`
	PhotoRef     string `json:"photoPath"`
}

func (s *BookingService) validate(in BookingInput) *Error {
	if strings.TrimSpace(in.GuestName) == "" {
		return validation("name", "guest name is required")
	}
	if strings.TrimSpace(in.GuestMobile) == "" {
		return validation("mobile", "guest mobile is required")
	}
	if in.GuestCount < 1 {
		return validation("guests", "guest count must be at least 1, got %d", in.GuestCount)
	}
	if !validDate(in.CheckInDate) {
		return validation("checkin_date", "expected YYYY-MM-DD, got %q", in.CheckInDate)
	}
	if in.CheckInDate < lodgeDate(s.now()) {
		return validation("checkin_date", "check-in date %s is in the past", in.CheckInDate)
	}
	if in.CheckOutDate != "" {
		if !validDate(in.CheckOutDate) {
			return validation("checkout_date", "expected YYYY-MM-DD, got %q", in.CheckOutDate)
		}
		if in.CheckOutDate <= in.CheckInDate {
			return validation("checkout_date", "check-out %s must be after check-in %s", in.CheckOutDate, in.CheckInDate)
		}
	}
	if in.TotalAmount <= 0 {
		return validation("total_amount", "total amount must be positive, got %d", in.TotalAmount)
	}
	if in.PaidAmount < 0 {
		return validation("paid_amount", "paid amount cannot be negative, got %d", in.PaidAmount)
	}
	if in.PaidAmount > in.TotalAmount {
		return validation("paid_amount", "advance ₹%d exceeds the total ₹%d", in.PaidAmount, in.TotalAmount)
	}
	if in.PaidAmount > 0 && in.Payment != models.MethodCash && in.Payment != models.MethodOnline {
		return validation("payment", "advances are taken by cash or online, got %q", in.Payment)
	}
	return nil
}

// bookingPaymentEntry is the ledger record for money taken on a booking
// before any stay exists. It carries the reference but no episode, so it
// lands in the day's takings without touching any balance.
func bookingPaymentEntry(b *models.Booking, amount int, method string, now time.Time) *models.LedgerEntry {
	return &models.LedgerEntry{
		Kind:       models.EntryPayment,
		Amount:     amount,
		Method:     method,
		RoomNumber: b.RoomNumber,
		GuestName:  b.GuestName,
		BookingRef: b.ReferenceCode,
		Date:       lodgeDate(now),
		Time:       lodgeClock(now),
		Note:       "Booking advance",
	}
}

// rangesOverlap treats ranges as [start, end) on date strings; a booking
// with no check-out date is an open-ended single night.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	if aEnd == "" {
		aEnd = aStart + "\x7f"
	}
	if bEnd == "" {
		bEnd = bStart + "\x7f"
	}
	return aStart < bEnd && bStart < aEnd
}

// CheckAvailability lists rooms free for the requested range. Confirmed
// bookings block their range; live occupancy blocks only ranges starting
// today, since a walk-in stay has no declared end date.
func (s *BookingService) CheckAvailability(checkIn, checkOut string) ([]models.Room, error) {
	if !validDate(checkIn) {
		return nil, validation("checkin_date", "expected YYYY-MM-DD, got %q", checkIn)
	}
	if checkOut != "" && !validDate(checkOut) {
		return nil, validation("checkout_date", "expected YYYY-MM-DD, got %q", checkOut)
	}

	var rooms []models.Room
	if err := s.DB.Order("floor, room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var bookings []models.Booking
	if err := s.DB.
		Where("status = ?", models.BookingConfirmed).
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	blocked := make(map[string]bool)
	for _, b := range bookings {
		if rangesOverlap(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			blocked[b.RoomNumber] = true
		}
	}

	today := lodgeDate(s.now())
	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if blocked[room.RoomNumber] {
			continue
		}
		if checkIn == today && room.Status != models.RoomVacant {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// Create records a confirmed booking after checking the range is free.
func (s *BookingService) Create(in BookingInput) (*models.Booking, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	available, err := s.CheckAvailability(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}
	free := false
	for _, room := range available {
		if room.RoomNumber == in.RoomNumber {
			free = true
			break
		}
	}
	if !free {
		return nil, stateConflict("room %s is not available for %s to %s", in.RoomNumber, in.CheckInDate, in.CheckOutDate)
	}

	code, err := utils.GenerateReferenceCode(6)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference code: %w", err)
	}

	now := s.now()
	booking := &models.Booking{
		ReferenceCode: "BK-" + code,
		RoomNumber:    in.RoomNumber,
		GuestName:     strings.TrimSpace(in.GuestName),
		GuestMobile:   strings.TrimSpace(in.GuestMobile),
		GuestCount:    in.GuestCount,
		BookingDate:   lodgeDate(now),
		CheckInDate:   in.CheckInDate,
		CheckOutDate:  in.CheckOutDate,
		TotalAmount:   in.TotalAmount,
		PaidAmount:    in.PaidAmount,
		Status:        models.BookingConfirmed,
		Notes:         in.Notes,
		PhotoRef:      in.PhotoRef,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		// The advance is money in hand today; it must show in today's
		// takings, not only when the guest arrives.
		if in.PaidAmount > 0 {
			entry := bookingPaymentEntry(booking, in.PaidAmount, in.Payment, now)
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to record booking advance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s: room %s, %s, advance ₹%d/₹%d",
		booking.ReferenceCode, booking.RoomNumber, booking.CheckInDate, booking.PaidAmount, booking.TotalAmount)
	return booking, nil
}

func (s *BookingService) find(tx *gorm.DB, ref string, lock bool) (*models.Booking, error) {
	var booking models.Booking
	q := tx.Where("reference_code = ?", ref)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking %s not found", ref)
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", ref, err)
	}
	return &booking, nil
}

// Get returns one booking by reference code.
func (s *BookingService) Get(ref string) (*models.Booking, error) {
	return s.find(s.DB, ref, false)
}

// List returns bookings, optionally filtered by status.
func (s *BookingService) List(status string) ([]models.Booking, error) {
	q := s.DB.Order("check_in_date, reference_code")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// roomFreeForTx reports whether roomNumber can host [checkIn, checkOut),
// ignoring the booking identified by excludeRef. Live occupancy only blocks
// ranges starting today, same rule as CheckAvailability.
func (s *BookingService) roomFreeForTx(tx *gorm.DB, roomNumber, checkIn, checkOut, excludeRef string) error {
	var room models.Room
	if err := tx.Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("room %s not found", roomNumber)
		}
		return fmt.Errorf("failed to load room %s: %w", roomNumber, err)
	}
	if checkIn == lodgeDate(s.now()) && room.Status != models.RoomVacant {
		return stateConflict("room %s is %s today", roomNumber, room.Status)
	}

	var others []models.Booking
	if err := tx.
		Where("room_number = ? AND status = ? AND reference_code <> ?",
			roomNumber, models.BookingConfirmed, excludeRef).
		Find(&others).Error; err != nil {
		return fmt.Errorf("failed to load bookings for room %s: %w", roomNumber, err)
	}
	for _, other := range others {
		if rangesOverlap(checkIn, checkOut, other.CheckInDate, other.CheckOutDate) {
			return stateConflict("room %s is not available for %s to %s", roomNumber, checkIn, checkOut)
		}
	}
	return nil
}

// Update edits a confirmed booking in place. The paid amount only moves
// through AddPayment; the total may not drop below what is already paid.
// Room and date edits re-check availability for the edited range.
func (s *BookingService) Update(ref string, in BookingInput) (*models.Booking, error) {
	var booking *models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.find(tx, ref, true)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingConfirmed {
			return stateConflict("booking %s is %s and cannot be edited", ref, booking.Status)
		}

		updates := map[string]interface{}{}
		if name := strings.TrimSpace(in.GuestName); name != "" {
			updates["guest_name"] = name
		}
		if mobile := strings.TrimSpace(in.GuestMobile); mobile != "" {
			updates["guest_mobile"] = mobile
		}
		if in.GuestCount > 0 {
			updates["guest_count"] = in.GuestCount
		}
		if in.CheckInDate != "" {
			if !validDate(in.CheckInDate) {
				return validation("checkin_date", "expected YYYY-MM-DD, got %q", in.CheckInDate)
			}
			updates["check_in_date"] = in.CheckInDate
		}
		if in.CheckOutDate != "" {
			if !validDate(in.CheckOutDate) {
				return validation("checkout_date", "expected YYYY-MM-DD, got %q", in.CheckOutDate)
			}
			updates["check_out_date"] = in.CheckOutDate
		}

		// Dates the booking will hold after this edit.
		checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate
		if in.CheckInDate != "" {
			checkIn = in.CheckInDate
		}
		if in.CheckOutDate != "" {
			checkOut = in.CheckOutDate
		}
		if checkOut != "" && checkOut <= checkIn {
			return validation("checkout_date", "check-out %s must be after check-in %s", checkOut, checkIn)
		}

		targetRoom := booking.RoomNumber
		if room := strings.TrimSpace(in.RoomNumber); room != "" {
			targetRoom = room
		}
		if targetRoom != booking.RoomNumber || in.CheckInDate != "" || in.CheckOutDate != "" {
			if err := s.roomFreeForTx(tx, targetRoom, checkIn, checkOut, booking.ReferenceCode); err != nil {
				return err
			}
		}
		if targetRoom != booking.RoomNumber {
			updates["room_number"] = targetRoom
		}
		if in.TotalAmount > 0 {
			if in.TotalAmount < booking.PaidAmount {
				return validation("total_amount", "total ₹%d is below the ₹%d already paid", in.TotalAmount, booking.PaidAmount)
			}
			updates["total_amount"] = in.TotalAmount
		}
		if in.Notes != "" {
			updates["notes"] = in.Notes
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking %s: %w", ref, err)
		}
		return tx.Where("reference_code = ?", ref).First(booking).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// AddPayment records a further advance against a confirmed booking. The
// money goes into the ledger in the same transaction as the paid-amount
// bump.
func (s *BookingService) AddPayment(ref string, amount int, method string) (*models.Booking, error) {
	if amount <= 0 {
		return nil, validation("amount", "payment amount must be positive, got %d", amount)
	}
	if method != models.MethodCash && method != models.MethodOnline {
		return nil, validation("method", "advances are taken by cash or online, got %q", method)
	}

	var booking *models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.find(tx, ref, true)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingConfirmed {
			return stateConflict("booking %s is %s; only a confirmed booking takes payments", ref, booking.Status)
		}
		if booking.PaidAmount+amount > booking.TotalAmount {
			return validation("amount", "payment ₹%d would exceed the booking total ₹%d", amount, booking.TotalAmount)
		}
		booking.PaidAmount += amount
		if err := tx.Model(booking).Update("paid_amount", booking.PaidAmount).Error; err != nil {
			return fmt.Errorf("failed to update booking %s: %w", ref, err)
		}

		entry := bookingPaymentEntry(booking, amount, method, s.now())
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to record booking payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel voids a confirmed booking, recording why. Any advance already paid
// is logged as refunded so the day's takings reconcile.
func (s *BookingService) Cancel(ref, reason, refundMethod string) (*models.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, validation("reason", "cancellation reason is required")
	}

	var booking *models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = s.find(tx, ref, true)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingConfirmed {
			return stateConflict("booking %s is %s and cannot be cancelled", ref, booking.Status)
		}

		now := s.now()
		if err := tx.Model(booking).Updates(map[string]interface{}{
			"status":              models.BookingCancelled,
			"cancellation_date":   lodgeDate(now),
			"cancellation_reason": strings.TrimSpace(reason),
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel booking %s: %w", ref, err)
		}
		booking.Status = models.BookingCancelled

		if booking.PaidAmount > 0 {
			method := refundMethod
			if method != models.MethodCash && method != models.MethodOnline {
				method = models.MethodCash
			}
			refund := &models.LedgerEntry{
				Kind:       models.EntryRefund,
				Amount:     booking.PaidAmount,
				Method:     method,
				RoomNumber: booking.RoomNumber,
				GuestName:  booking.GuestName,
				BookingRef: booking.ReferenceCode,
				Date:       lodgeDate(now),
				Time:       lodgeClock(now),
				Note:       "Booking cancellation refund",
			}
			if err := tx.Create(refund).Error; err != nil {
				return fmt.Errorf("failed to record booking refund: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("⚠️  Booking %s cancelled: %s", ref, reason)
	return booking, nil
}

// ConvertInput settles a booking into an actual check-in. The room may
// differ from the one reserved; the remaining amount may be paid now or
// carried onto the stay's balance.
type ConvertInput struct {
	Reference     string `json:"reference"`
	Room          string `json:"room"`
	AmountPaidNow int    `json:"amountPaid"`
	Payment       string `json:"payment"`
}

// ConvertToCheckIn turns a confirmed booking into a live occupancy episode
// in one transaction: the booking total becomes the stay's rent charge, the
// advance counts as already paid, and any further payment taken now is
// recorded on top.
func (s *BookingService) ConvertToCheckIn(in ConvertInput) (*models.OccupancyEpisode, error) {
	if in.AmountPaidNow < 0 {
		return nil, validation("amountPaid", "amount paid cannot be negative, got %d", in.AmountPaidNow)
	}
	if in.AmountPaidNow > 0 && !models.ValidMethod(in.Payment) {
		return nil, validation("payment", "payment method must be cash or online, got %q", in.Payment)
	}
	if in.AmountPaidNow > 0 && in.Payment == models.MethodBalance {
		return nil, validation("payment", "cannot use pay later with an amount paid; choose cash or online")
	}

	var episode *models.OccupancyEpisode
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := s.find(tx, in.Reference, true)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingConfirmed {
			return stateConflict("booking %s is %s and cannot be checked in", in.Reference, booking.Status)
		}

		roomNumber := in.Room
		if roomNumber == "" {
			roomNumber = booking.RoomNumber
		}
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		if room.Status != models.RoomVacant {
			return stateConflict("room %s is %s; check-in needs a vacant room", roomNumber, room.Status)
		}

		if in.AmountPaidNow > booking.Balance() {
			return validation("amountPaid", "payment ₹%d exceeds the remaining ₹%d on booking %s",
				in.AmountPaidNow, booking.Balance(), in.Reference)
		}

		now := s.now()
		episode = &models.OccupancyEpisode{
			RoomNumber:  roomNumber,
			GuestName:   booking.GuestName,
			GuestMobile: booking.GuestMobile,
			GuestCount:  booking.GuestCount,
			CheckinTime: now,
			Price:       booking.TotalAmount,
			PhotoRef:    booking.PhotoRef,
			Version:     1,
		}
		if err := tx.Create(episode).Error; err != nil {
			return fmt.Errorf("failed to create occupancy episode: %w", err)
		}

		rent := &models.LedgerEntry{
			Kind:       models.EntryRent,
			Amount:     booking.TotalAmount,
			Method:     models.MethodBalance,
			Day:        1,
			BookingRef: booking.ReferenceCode,
			Note:       fmt.Sprintf("Booking %s check-in", booking.ReferenceCode),
		}
		if err := s.Lifecycle.Ledger.recordTx(tx, rent, episode, now); err != nil {
			return err
		}

		// The advance was collected when the booking was made; it lands
		// here as a balance-method credit so it is not double counted in
		// the day's cash or online takings.
		if booking.PaidAmount > 0 {
			advance := &models.LedgerEntry{
				Kind:       models.EntryPayment,
				Amount:     booking.PaidAmount,
				Method:     models.MethodBalance,
				BookingRef: booking.ReferenceCode,
				Note:       "Booking advance carried over",
			}
			if err := s.Lifecycle.Ledger.recordTx(tx, advance, episode, now); err != nil {
				return err
			}
		}

		if in.AmountPaidNow > 0 {
			payment := &models.LedgerEntry{
				Kind:       models.EntryPayment,
				Amount:     in.AmountPaidNow,
				Method:     in.Payment,
				BookingRef: booking.ReferenceCode,
				Note:       "Payment at booking check-in",
			}
			if err := s.Lifecycle.Ledger.recordTx(tx, payment, episode, now); err != nil {
				return err
			}
		}

		if err := tx.Model(room).Updates(map[string]interface{}{
			"status":             models.RoomOccupied,
			"current_episode_id": episode.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to occupy room %s: %w", roomNumber, err)
		}

		return tx.Model(booking).Updates(map[string]interface{}{
			"status":        models.BookingCheckedIn,
			"checked_in_at": &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s converted to check-in, room %s, balance ₹%d", in.Reference, episode.RoomNumber, episode.Balance)
	return episode, nil
}
