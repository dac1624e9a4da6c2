package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lodge-backend/domain"
	"lodge-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LifecycleService owns every vacant/occupied/cleaning transition. All room
// mutations run in a transaction holding a row lock on the room, so two
// concurrent requests on the same room serialize instead of both reading
// the same stale state.
type LifecycleService struct {
	DB     *gorm.DB
	Ledger *LedgerService
	Now    func() time.Time
}

func NewLifecycleService(db *gorm.DB, ledger *LedgerService) *LifecycleService {
	return &LifecycleService{DB: db, Ledger: ledger, Now: time.Now}
}

func (s *LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// lockRoom loads the room under SELECT ... FOR UPDATE.
func lockRoom(tx *gorm.DB, roomNumber string) (*models.Room, error) {
	var room models.Room
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_number = ?", roomNumber).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room %s not found", roomNumber)
		}
		return nil, fmt.Errorf("failed to load room %s: %w", roomNumber, err)
	}
	return &room, nil
}

func lockEpisode(tx *gorm.DB, room *models.Room) (*models.OccupancyEpisode, error) {
	if room.Status != models.RoomOccupied || room.CurrentEpisodeID == nil {
		return nil, stateConflict("room %s is %s, not occupied", room.RoomNumber, room.Status)
	}
	var ep models.OccupancyEpisode
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ep, *room.CurrentEpisodeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("occupancy record for room %s not found", room.RoomNumber)
		}
		return nil, fmt.Errorf("failed to load episode for room %s: %w", room.RoomNumber, err)
	}
	return &ep, nil
}

// CheckInInput carries everything the front desk submits at check-in.
type CheckInInput struct {
	Room       string `json:"room"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	GuestCount int    `json:"guests"`
	ACEnabled  bool   `json:"ac"`
	// Optional explicit price; zero means "use the pricing policy".
	Price      int    `json:"price"`
	AmountPaid int    `json:"amountPaid"`
	Payment    string `json:"payment"`
	PhotoRef   string `json:"photoPath"`
}

func validateCheckIn(in CheckInInput) *Error {
	if strings.TrimSpace(in.Name) == "" {
		return validation("name", "guest name is required")
	}
	if strings.TrimSpace(in.Mobile) == "" {
		return validation("mobile", "guest mobile is required")
	}
	if in.GuestCount < 1 {
		return validation("guests", "guest count must be at least 1, got %d", in.GuestCount)
	}
	if in.AmountPaid < 0 {
		return validation("amountPaid", "amount paid cannot be negative, got %d", in.AmountPaid)
	}
	if in.Price < 0 {
		return validation("price", "price cannot be negative, got %d", in.Price)
	}
	if !models.ValidMethod(in.Payment) {
		return validation("payment", "payment method must be cash, online or balance, got %q", in.Payment)
	}
	// Pay later and an up-front amount are mutually exclusive; this holds
	// here, not only in the UI.
	if in.AmountPaid > 0 && in.Payment == models.MethodBalance {
		return validation("payment", "cannot use pay later with an amount paid; choose cash or online")
	}
	if in.AmountPaid == 0 && in.Payment != models.MethodBalance {
		return validation("amountPaid", "amount paid is required for %s payment", in.Payment)
	}
	return nil
}

// CheckIn opens a new occupancy episode on a vacant room. The day-1 rent is
// charged to the episode immediately; whatever was paid up front is
// recorded against it.
func (s *LifecycleService) CheckIn(in CheckInInput) (*models.OccupancyEpisode, error) {
	if err := validateCheckIn(in); err != nil {
		return nil, err
	}

	price := in.Price
	if price == 0 {
		price = domain.CalculatePrice(in.Room, in.GuestCount, in.ACEnabled)
	}
	if in.AmountPaid > price {
		return nil, validation("amountPaid", "amount paid ₹%d exceeds the room price ₹%d", in.AmountPaid, price)
	}

	var episode *models.OccupancyEpisode
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, in.Room)
		if err != nil {
			return err
		}
		if room.Status != models.RoomVacant {
			return stateConflict("room %s is %s; check-in needs a vacant room", room.RoomNumber, room.Status)
		}

		now := s.now()
		episode = &models.OccupancyEpisode{
			RoomNumber:  room.RoomNumber,
			GuestName:   strings.TrimSpace(in.Name),
			GuestMobile: strings.TrimSpace(in.Mobile),
			GuestCount:  in.GuestCount,
			ACEnabled:   in.ACEnabled && domain.InACRange(room.RoomNumber),
			CheckinTime: now,
			Price:       price,
			PhotoRef:    in.PhotoRef,
			Version:     1,
		}
		if err := tx.Create(episode).Error; err != nil {
			return fmt.Errorf("failed to create occupancy episode: %w", err)
		}

		// Day 1 rent falls due at check-in.
		rent := &models.LedgerEntry{
			Kind:   models.EntryRent,
			Amount: price,
			Method: models.MethodBalance,
			Day:    1,
			Note:   "Day 1 rent",
		}
		if err := s.Ledger.recordTx(tx, rent, episode, now); err != nil {
			return err
		}

		if in.AmountPaid > 0 {
			payment := &models.LedgerEntry{
				Kind:   models.EntryPayment,
				Amount: in.AmountPaid,
				Method: in.Payment,
				Note:   "Check-in payment",
			}
			if err := s.Ledger.recordTx(tx, payment, episode, now); err != nil {
				return err
			}
		}

		if err := tx.Model(room).Updates(map[string]interface{}{
			"status":             models.RoomOccupied,
			"current_episode_id": episode.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to occupy room %s: %w", room.RoomNumber, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Check-in: room %s, guest %s, price ₹%d, balance ₹%d", in.Room, episode.GuestName, price, episode.Balance)
	return episode, nil
}

// Renew advances the stay by one day and charges that day's rent to the
// balance. It never takes a payment; collecting rent is a separate
// AddPayment call. expectedCount guards against two renewals racing on the
// same expiry.
func (s *LifecycleService) Renew(roomNumber string, expectedCount int) (int, error) {
	var newCount int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}

		if episode.RenewalCount != expectedCount {
			return concurrency("room %s renewal count is %d, not %d; re-fetch and retry", roomNumber, episode.RenewalCount, expectedCount)
		}

		now := s.now()
		status := domain.Renewal(episode.CheckinTime, episode.RenewalCount, now)
		if !status.Expired {
			return stateConflict("cannot renew room %s yet: %dh %dm remaining until day %d",
				roomNumber, status.HoursLeft, status.MinutesLeft, status.DayNumber)
		}

		newCount = episode.RenewalCount + 1
		rent := &models.LedgerEntry{
			Kind:   models.EntryRent,
			Amount: episode.Price,
			Method: models.MethodBalance,
			Day:    newCount + 1,
			Note:   fmt.Sprintf("Day %d rent renewal", newCount+1),
		}
		if err := s.Ledger.recordTx(tx, rent, episode, now); err != nil {
			return err
		}

		if err := tx.Model(&models.OccupancyEpisode{}).
			Where("id = ?", episode.ID).
			Update("renewal_count", newCount).Error; err != nil {
			return fmt.Errorf("failed to bump renewal count: %w", err)
		}

		// Remember when the sweep last advanced a room.
		if err := tx.Model(&models.LodgeSetting{}).
			Where("id = 1").
			Update("last_rent_check", lodgeStamp(now)).Error; err != nil {
			log.Printf("⚠️  failed to update last rent check: %v", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Rent renewed for room %s, day %d", roomNumber, newCount+1)
	return newCount, nil
}

// AddService bills an add-on to an occupied room. Paid on the spot it
// settles immediately; on "balance" it becomes due at checkout.
func (s *LifecycleService) AddService(roomNumber, item string, unitPrice, quantity int, method string) (*models.LedgerEntry, error) {
	if strings.TrimSpace(item) == "" {
		return nil, validation("item", "service item is required")
	}
	if unitPrice <= 0 {
		return nil, validation("price", "unit price must be positive, got %d", unitPrice)
	}
	if quantity <= 0 {
		return nil, validation("quantity", "quantity must be positive, got %d", quantity)
	}
	if !models.ValidMethod(method) {
		return nil, validation("payment_method", "payment method must be cash, online or balance, got %q", method)
	}

	entry := &models.LedgerEntry{
		Kind:     models.EntryAddOn,
		Amount:   unitPrice * quantity,
		Method:   method,
		Item:     strings.TrimSpace(item),
		Quantity: quantity,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}
		return s.Ledger.recordTx(tx, entry, episode, s.now())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Add-on %q ₹%d for room %s (%s)", entry.Item, entry.Amount, roomNumber, method)
	return entry, nil
}

// ApplyDiscount reduces what the guest owes. A free-text reason is required
// so the day's takings can be reconciled.
func (s *LifecycleService) ApplyDiscount(roomNumber string, amount int, reason string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, validation("amount", "discount amount must be positive, got %d", amount)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, validation("reason", "discount reason is required")
	}

	entry := &models.LedgerEntry{
		Kind:   models.EntryDiscount,
		Amount: amount,
		Method: models.MethodBalance,
		Note:   strings.TrimSpace(reason),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}
		return s.Ledger.recordTx(tx, entry, episode, s.now())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Discount ₹%d on room %s: %s", amount, roomNumber, entry.Note)
	return entry, nil
}

func validatePaymentAgainstBalance(amount, balance int) *Error {
	if amount < 0 {
		return validation("amount", "payment amount cannot be negative, got %d", amount)
	}
	if balance <= 0 && amount > 0 {
		return stateConflict("no outstanding balance to pay against")
	}
	if amount > balance {
		return validation("amount", "payment ₹%d exceeds the outstanding balance ₹%d", amount, balance)
	}
	return nil
}

// AddPayment records money received against a positive balance. A zero
// amount on a zero balance is a harmless no-op.
func (s *LifecycleService) AddPayment(roomNumber string, amount int, method string) (*models.LedgerEntry, error) {
	if method != models.MethodCash && method != models.MethodOnline {
		return nil, validation("method", "payments are taken by cash or online, got %q", method)
	}

	var entry *models.LedgerEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}
		if err := validatePaymentAgainstBalance(amount, episode.Balance); err != nil {
			return err
		}
		if amount == 0 {
			return nil
		}
		entry = &models.LedgerEntry{
			Kind:   models.EntryPayment,
			Amount: amount,
			Method: method,
		}
		return s.Ledger.recordTx(tx, entry, episode, s.now())
	})
	if err != nil {
		return nil, err
	}
	if entry != nil {
		log.Printf("✅ Payment ₹%d (%s) for room %s", amount, method, roomNumber)
	}
	return entry, nil
}

func validateRefundAgainstBalance(amount, balance int) *Error {
	if amount <= 0 {
		return validation("amount", "refund amount must be positive, got %d", amount)
	}
	if balance >= 0 {
		return stateConflict("no refund is owed: balance is ₹%d", balance)
	}
	if amount > -balance {
		return validation("amount", "refund ₹%d exceeds the ₹%d owed to the guest", amount, -balance)
	}
	return nil
}

// ProcessRefund returns money to the guest while the balance is negative.
func (s *LifecycleService) ProcessRefund(roomNumber string, amount int, method string) (*models.LedgerEntry, error) {
	if method != models.MethodCash && method != models.MethodOnline {
		return nil, validation("method", "refunds are paid by cash or online, got %q", method)
	}

	var entry *models.LedgerEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}
		if err := validateRefundAgainstBalance(amount, episode.Balance); err != nil {
			return err
		}
		note := "Full refund"
		if amount < -episode.Balance {
			note = "Partial refund"
		}
		entry = &models.LedgerEntry{
			Kind:   models.EntryRefund,
			Amount: amount,
			Method: method,
			Note:   note,
		}
		return s.Ledger.recordTx(tx, entry, episode, s.now())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Refund ₹%d (%s) for room %s", amount, method, roomNumber)
	return entry, nil
}

// CheckoutResult reports how the episode ended.
type CheckoutResult struct {
	Room         string `json:"room"`
	FinalBalance int    `json:"final_balance"`
	SettlementID string `json:"settlement_id,omitempty"`
}

// checkoutGate decides whether an episode with this balance may end.
func checkoutGate(balance int, settleLater bool) *Error {
	switch {
	case balance < 0:
		return stateConflict("cannot checkout: refund of ₹%d pending; process the refund first", -balance)
	case balance > 0 && !settleLater:
		return stateConflict("cannot checkout: ₹%d outstanding; collect it or choose settle later", balance)
	default:
		return nil
	}
}

// Checkout ends the episode. The balance must be exactly zero, unless a
// positive balance is deferred into a settlement; a negative balance always
// blocks until the refund is processed.
func (s *LifecycleService) Checkout(roomNumber string, settleLater bool, notes string) (*CheckoutResult, error) {
	result := &CheckoutResult{Room: roomNumber}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		episode, err := lockEpisode(tx, room)
		if err != nil {
			return err
		}

		if err := checkoutGate(episode.Balance, settleLater); err != nil {
			return err
		}

		now := s.now()
		if episode.Balance > 0 {
			settlement, err := spawnSettlementTx(tx, episode, notes, now)
			if err != nil {
				return err
			}
			result.SettlementID = settlement.SettlementID

			transfer := &models.LedgerEntry{
				Kind:          models.EntrySettlement,
				Amount:        episode.Balance,
				Method:        models.MethodBalance,
				SettlementRef: settlement.SettlementID,
				Note:          "Balance deferred to settle later",
			}
			if err := s.Ledger.recordTx(tx, transfer, episode, now); err != nil {
				return err
			}
		}
		result.FinalBalance = episode.Balance

		if err := tx.Model(&models.OccupancyEpisode{}).
			Where("id = ?", episode.ID).
			Updates(map[string]interface{}{
				"checkout_time": now,
				"archived_at":   now,
				"version":       episode.Version + 1,
			}).Error; err != nil {
			return fmt.Errorf("failed to archive episode: %w", err)
		}

		if err := tx.Model(room).Updates(map[string]interface{}{
			"status":             models.RoomVacant,
			"current_episode_id": nil,
		}).Error; err != nil {
			return fmt.Errorf("failed to vacate room %s: %w", roomNumber, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Checkout: room %s (settlement: %q)", roomNumber, result.SettlementID)
	return result, nil
}

// spawnSettlementTx is the single place a settlement is born: at checkout,
// for the residual positive balance.
func spawnSettlementTx(tx *gorm.DB, episode *models.OccupancyEpisode, notes string, now time.Time) (*models.Settlement, error) {
	snapshot, _ := json.Marshal(map[string]interface{}{
		"room":        episode.RoomNumber,
		"name":        episode.GuestName,
		"mobile":      episode.GuestMobile,
		"guests":      episode.GuestCount,
		"price":       episode.Price,
		"checkinTime": lodgeStamp(episode.CheckinTime),
	})

	settlement := &models.Settlement{
		SettlementID:  uuid.NewString(),
		RoomNumber:    episode.RoomNumber,
		GuestName:     episode.GuestName,
		GuestMobile:   episode.GuestMobile,
		GuestSnapshot: snapshot,
		EpisodeID:     &episode.ID,
		AmountDue:     episode.Balance,
		Status:        models.SettlementPending,
		Notes:         notes,
	}
	if err := tx.Create(settlement).Error; err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}
	return settlement, nil
}

// TransferInput moves a stay to another room, optionally at a new nightly
// price (the destination may be a different tier).
type TransferInput struct {
	FromRoom  string `json:"old_room"`
	ToRoom    string `json:"new_room"`
	NewPrice  int    `json:"new_price"`
	ACEnabled *bool  `json:"ac"`
}

// TransferRoom atomically moves the whole episode, running balance and
// ledger history included, to a vacant room. Rooms are locked in a fixed
// order so two opposing transfers cannot deadlock.
func (s *LifecycleService) TransferRoom(in TransferInput) error {
	if in.FromRoom == in.ToRoom {
		return validation("new_room", "source and destination rooms are the same")
	}
	if in.NewPrice < 0 {
		return validation("new_price", "price cannot be negative, got %d", in.NewPrice)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		first, second := in.FromRoom, in.ToRoom
		if second < first {
			first, second = second, first
		}
		roomA, err := lockRoom(tx, first)
		if err != nil {
			return err
		}
		roomB, err := lockRoom(tx, second)
		if err != nil {
			return err
		}
		from, to := roomA, roomB
		if from.RoomNumber != in.FromRoom {
			from, to = roomB, roomA
		}

		episode, err := lockEpisode(tx, from)
		if err != nil {
			return err
		}
		if to.Status != models.RoomVacant {
			return stateConflict("destination room %s is %s, not vacant", to.RoomNumber, to.Status)
		}

		updates := map[string]interface{}{
			"room_number": to.RoomNumber,
			"version":     episode.Version + 1,
		}
		if in.NewPrice > 0 {
			updates["price"] = in.NewPrice
		}
		if in.ACEnabled != nil {
			updates["ac_enabled"] = *in.ACEnabled && domain.InACRange(to.RoomNumber)
		}
		if err := tx.Model(&models.OccupancyEpisode{}).
			Where("id = ?", episode.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to move episode: %w", err)
		}

		if err := tx.Model(from).Updates(map[string]interface{}{
			"status":             models.RoomVacant,
			"current_episode_id": nil,
		}).Error; err != nil {
			return fmt.Errorf("failed to vacate room %s: %w", from.RoomNumber, err)
		}
		if err := tx.Model(to).Updates(map[string]interface{}{
			"status":             models.RoomOccupied,
			"current_episode_id": episode.ID,
		}).Error; err != nil {
			return fmt.Errorf("failed to occupy room %s: %w", to.RoomNumber, err)
		}

		now := s.now()
		shift := &models.RoomShift{
			EpisodeID: episode.ID,
			FromRoom:  from.RoomNumber,
			ToRoom:    to.RoomNumber,
			GuestName: episode.GuestName,
			Date:      lodgeDate(now),
			Time:      lodgeClock(now),
			Note:      fmt.Sprintf("Transferred from Room %s to Room %s", from.RoomNumber, to.RoomNumber),
		}
		if err := tx.Create(shift).Error; err != nil {
			return fmt.Errorf("failed to record room shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Transfer: room %s → %s", in.FromRoom, in.ToRoom)
	return nil
}

// MarkForCleaning takes a vacant room out of service for housekeeping.
func (s *LifecycleService) MarkForCleaning(roomNumber string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		if room.Status != models.RoomVacant {
			return stateConflict("room %s is %s; only a vacant room can enter cleaning", roomNumber, room.Status)
		}
		now := s.now()
		return tx.Model(room).Updates(map[string]interface{}{
			"status":         models.RoomCleaning,
			"cleaning_start": now,
		}).Error
	})
}

// MarkCleaned returns a cleaning room to service.
func (s *LifecycleService) MarkCleaned(roomNumber string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomNumber)
		if err != nil {
			return err
		}
		if room.Status != models.RoomCleaning {
			return stateConflict("room %s is not in cleaning status", roomNumber)
		}
		return tx.Model(room).Updates(map[string]interface{}{
			"status":         models.RoomVacant,
			"cleaning_start": nil,
		}).Error
	})
}

// UpdateCheckinTime corrects the check-in anchor (front desk typo fix). The
// renewal count resets because every due-time hangs off this instant.
func (s *LifecycleService) UpdateCheckinTime(roomNumber, stamp string) error {
	parsed, err := time.ParseInLocation("2006-01-02 15:04", stamp, lodgeTZ)
	if err != nil {
		return validation("checkin_time", "expected YYYY-MM-DD HH:MM, got %q", stamp)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		room, lockErr := lockRoom(tx, roomNumber)
		if lockErr != nil {
			return lockErr
		}
		episode, epErr := lockEpisode(tx, room)
		if epErr != nil {
			return epErr
		}
		return tx.Model(&models.OccupancyEpisode{}).
			Where("id = ?", episode.ID).
			Updates(map[string]interface{}{
				"checkin_time":  parsed,
				"renewal_count": 0,
				"version":       episode.Version + 1,
			}).Error
	})
}

// RoomView is a dashboard row: the room plus its live renewal projection.
type RoomView struct {
	models.Room
	Renewal *domain.RenewalStatus `json:"renewal,omitempty"`
}

// ListRooms returns every room with its current episode and, for occupied
// rooms, the renewal projection the dashboard badges hang off.
func (s *LifecycleService) ListRooms() ([]RoomView, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Episode").Order("floor, room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	now := s.now()
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		view := RoomView{Room: room}
		if room.Status == models.RoomOccupied && room.Episode != nil {
			status := domain.Renewal(room.Episode.CheckinTime, room.Episode.RenewalCount, now)
			view.Renewal = &status
		}
		views = append(views, view)
	}
	return views, nil
}
