package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementService tracks balances deferred at checkout until they are
// collected or written off.
type SettlementService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{DB: db, Now: time.Now}
}

func (s *SettlementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns settlements newest first, optionally filtered by status.
func (s *SettlementService) List(status string) ([]models.Settlement, error) {
	q := s.DB.Preload("Payments").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var settlements []models.Settlement
	if err := q.Find(&settlements).Error; err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}

// Get returns one settlement with its payment history.
func (s *SettlementService) Get(id string) (*models.Settlement, error) {
	var settlement models.Settlement
	err := s.DB.Preload("Payments").
		Where("settlement_id = ?", id).
		First(&settlement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("settlement %s not found", id)
		}
		return nil, fmt.Errorf("failed to load settlement %s: %w", id, err)
	}
	return &settlement, nil
}

// CollectInput records money (and optionally forgiveness) against a
// settlement.
type CollectInput struct {
	SettlementID   string `json:"settlement_id"`
	Amount         int    `json:"amount"`
	Method         string `json:"method"`
	Discount       int    `json:"discount"`
	DiscountReason string `json:"discount_reason"`
}

func validateCollection(in CollectInput, remaining int) *Error {
	if in.Amount < 0 {
		return validation("amount", "collection amount cannot be negative, got %d", in.Amount)
	}
	if in.Discount < 0 {
		return validation("discount", "discount cannot be negative, got %d", in.Discount)
	}
	if in.Amount == 0 && in.Discount == 0 {
		return validation("amount", "nothing to collect: amount and discount are both zero")
	}
	if in.Amount > 0 && in.Method != models.MethodCash && in.Method != models.MethodOnline {
		return validation("method", "collections are taken by cash or online, got %q", in.Method)
	}
	if in.Discount > 0 && strings.TrimSpace(in.DiscountReason) == "" {
		return validation("discount_reason", "a reason is required when forgiving part of the amount")
	}
	if in.Amount+in.Discount > remaining {
		return validation("amount", "₹%d collected plus ₹%d forgiven exceeds the ₹%d remaining",
			in.Amount, in.Discount, remaining)
	}
	return nil
}

// Collect applies a payment to a pending or partial settlement. Each call
// leaves an immutable payment row; the settlement flips to paid once
// nothing remains.
func (s *SettlementService) Collect(in CollectInput) (*models.Settlement, error) {
	var settlement *models.Settlement
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var st models.Settlement
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("settlement_id = ?", in.SettlementID).
			First(&st).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("settlement %s not found", in.SettlementID)
			}
			return fmt.Errorf("failed to load settlement %s: %w", in.SettlementID, err)
		}
		if st.Terminal() {
			return stateConflict("settlement %s is already %s", in.SettlementID, st.Status)
		}
		if verr := validateCollection(in, st.Remaining()); verr != nil {
			return verr
		}

		now := s.now()
		payment := &models.SettlementPayment{
			SettlementDBID: st.ID,
			Amount:         in.Amount,
			Method:         in.Method,
			Discount:       in.Discount,
			DiscountReason: strings.TrimSpace(in.DiscountReason),
			Date:           lodgeDate(now),
			Time:           lodgeClock(now),
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record settlement payment: %w", err)
		}

		st.Collected += in.Amount
		st.DiscountTotal += in.Discount
		if st.Remaining() == 0 {
			st.Status = models.SettlementPaid
		} else {
			st.Status = models.SettlementPartial
		}
		if err := tx.Model(&st).Updates(map[string]interface{}{
			"collected":      st.Collected,
			"discount_total": st.DiscountTotal,
			"status":         st.Status,
		}).Error; err != nil {
			return fmt.Errorf("failed to update settlement %s: %w", in.SettlementID, err)
		}

		// Collections surface in that day's takings under the room the
		// guest stayed in.
		if in.Amount > 0 {
			entry := &models.LedgerEntry{
				Kind:          models.EntryPayment,
				Amount:        in.Amount,
				Method:        in.Method,
				RoomNumber:    st.RoomNumber,
				GuestName:     st.GuestName,
				SettlementRef: st.SettlementID,
				Date:          lodgeDate(now),
				Time:          lodgeClock(now),
				Note:          "Settlement collection",
			}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to record collection in ledger: %w", err)
			}
		}

		settlement = &st
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Settlement %s: collected ₹%d, forgiven ₹%d, now %s",
		settlement.SettlementID, in.Amount, in.Discount, settlement.Status)
	return settlement, nil
}

// Cancel writes off whatever remains uncollected. The payments already
// taken stay on record.
func (s *SettlementService) Cancel(id, reason string) (*models.Settlement, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, validation("reason", "a reason is required to cancel a settlement")
	}

	var settlement *models.Settlement
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var st models.Settlement
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("settlement_id = ?", id).
			First(&st).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("settlement %s not found", id)
			}
			return fmt.Errorf("failed to load settlement %s: %w", id, err)
		}
		if st.Terminal() {
			return stateConflict("settlement %s is already %s", id, st.Status)
		}

		if err := tx.Model(&st).Updates(map[string]interface{}{
			"status":        models.SettlementCancelled,
			"cancel_reason": strings.TrimSpace(reason),
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel settlement %s: %w", id, err)
		}
		st.Status = models.SettlementCancelled
		st.CancelReason = strings.TrimSpace(reason)
		settlement = &st
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("⚠️  Settlement %s cancelled: %s", id, reason)
	return settlement, nil
}
