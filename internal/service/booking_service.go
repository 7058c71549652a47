package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
)

// createAttempts bounds the retry loop around the booking commit; once
// exhausted the caller gets a conflict, never a silent wrong result.
const createAttempts = 3

// BookingService owns the reservation lifecycle. The booking commit is
// the one contended operation: a per-slot mutex plus a check-then-insert
// inside a single transaction guarantees that at most one active
// reservation ever references a slot.
type BookingService struct {
	db       *gorm.DB
	resRepo  repository.ReservationRepository
	settings *Settings
	clock    Clock

	slotLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewBookingService(db *gorm.DB, resRepo repository.ReservationRepository, settings *Settings, clock Clock) *BookingService {
	if clock == nil {
		clock = RealClock{}
	}
	return &BookingService{db: db, resRepo: resRepo, settings: settings, clock: clock}
}

// Get returns a reservation with its order lines.
func (s *BookingService) Get(ctx context.Context, reservationID uuid.UUID) (*model.Reservation, error) {
	return s.resRepo.GetByID(ctx, reservationID.String())
}

// ListUserReservations pages through one user's reservations created in
// [from, to], newest first.
func (s *BookingService) ListUserReservations(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
	limit, offset int,
) ([]model.Reservation, int64, error) {
	return s.resRepo.ListByUserAndRange(ctx, userID.String(), from, to, limit, offset)
}

func (s *BookingService) slotLock(slotID uuid.UUID) *sync.Mutex {
	v, _ := s.slotLocks.LoadOrStore(slotID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// canTransition encodes the lifecycle:
// pending -> confirmed | cancelled | completed (completion may skip
// confirmation), confirmed -> completed | cancelled. Cancelled and
// completed are terminal.
func canTransition(from, to model.ReservationStatus) bool {
	switch from {
	case model.ReservationStatusPending:
		return to == model.ReservationStatusConfirmed ||
			to == model.ReservationStatusCancelled ||
			to == model.ReservationStatusCompleted
	case model.ReservationStatusConfirmed:
		return to == model.ReservationStatusCompleted ||
			to == model.ReservationStatusCancelled
	default:
		return false
	}
}

// Create books a slot for a user. Guards, in order: reservations
// enabled, slot exists and is active, slot start strictly in the
// future, party size within table capacity, no active reservation on
// the slot. The conflict check and the insert run under the slot's
// mutex in one transaction.
func (s *BookingService) Create(ctx context.Context, userID, slotID uuid.UUID, partySize int) (*model.Reservation, error) {
	cfg := s.settings.Current()
	if !cfg.ReservationsEnabled {
		return nil, ErrReservationsDisabled
	}
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrValidation)
	}

	mu := s.slotLock(slotID)
	mu.Lock()
	defer mu.Unlock()

	var (
		created *model.Reservation
		lastErr error
	)
	for attempt := 1; attempt <= createAttempts; attempt++ {
		lastErr = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var slot model.Slot
			if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
				return fmt.Errorf("load slot: %w", err)
			}
			if !slot.IsActive {
				return fmt.Errorf("%w: slot is inactive", ErrValidation)
			}
			if !slot.StartsAt.After(s.clock.Now()) {
				return fmt.Errorf("%w: slot starts at %s", ErrPastSlot, slot.StartsAt.Format(time.RFC3339))
			}

			var table model.CafeTable
			if err := tx.First(&table, "id = ?", slot.TableID).Error; err != nil {
				return fmt.Errorf("load table: %w", err)
			}
			if partySize > table.Capacity {
				return fmt.Errorf("%w: party of %d, table seats %d", ErrCapacityExceeded, partySize, table.Capacity)
			}

			var active int64
			err := tx.Model(&model.Reservation{}).
				Where("slot_id = ?", slotID).
				Where("status IN ?", model.ActiveReservationStatuses).
				Count(&active).Error
			if err != nil {
				return fmt.Errorf("count active reservations: %w", err)
			}
			if active > 0 {
				return ErrSlotTaken
			}

			res := &model.Reservation{
				ID:               uuid.New(),
				UserID:           userID,
				SlotID:           slot.ID,
				TableID:          slot.TableID,
				Date:             slot.Date,
				PartySize:        partySize,
				Status:           model.ReservationStatusPending,
				AttendanceStatus: model.AttendanceUnknown,
				TotalPriceCents:  table.PricePerPersonCents * int64(partySize),
			}
			if err := tx.Create(res).Error; err != nil {
				return fmt.Errorf("create reservation: %w", err)
			}
			if err := recordEventTx(tx, model.EventTypeReservationCreated, &userID, &res.ID,
				fmt.Sprintf("table %d, party of %d", table.TableNumber, partySize)); err != nil {
				return err
			}
			created = res
			return nil
		})
		if lastErr == nil {
			log.WithFields(log.Fields{
				"reservation_id": created.ID,
				"slot_id":        slotID,
				"party_size":     partySize,
			}).Info("reservation created")
			return created, nil
		}
		if isDomainError(lastErr) {
			return nil, lastErr
		}
		// Transient storage failure: retry a bounded number of times.
		log.WithError(lastErr).WithField("attempt", attempt).Warn("booking commit retry")
	}
	return nil, fmt.Errorf("%w: commit failed after %d attempts: %v", ErrSlotTaken, createAttempts, lastErr)
}

// Confirm moves a pending reservation to confirmed. Staff operation.
func (s *BookingService) Confirm(ctx context.Context, reservationID uuid.UUID) (*model.Reservation, error) {
	return s.transition(ctx, reservationID, model.ReservationStatusConfirmed,
		model.EventTypeReservationConfirmed, nil)
}

// Cancel moves a reservation to cancelled and frees its slot. Cancelling
// an already-cancelled reservation is a no-op. The slot start must still
// be in the future; non-staff callers must also be outside the
// configured cancellation window, staff may bypass the window when the
// late-cancel override is enabled.
func (s *BookingService) Cancel(ctx context.Context, reservationID uuid.UUID, actorIsStaff bool) (*model.Reservation, error) {
	cfg := s.settings.Current()
	var out *model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res model.Reservation
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			return fmt.Errorf("load reservation: %w", err)
		}
		if res.Status == model.ReservationStatusCancelled {
			out = &res // idempotent
			return nil
		}
		if !canTransition(res.Status, model.ReservationStatusCancelled) {
			return fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidState, res.Status)
		}

		var slot model.Slot
		if err := tx.First(&slot, "id = ?", res.SlotID).Error; err != nil {
			return fmt.Errorf("load slot: %w", err)
		}
		now := s.clock.Now()
		if !slot.StartsAt.After(now) {
			return fmt.Errorf("%w: slot already started", ErrPastSlot)
		}

		window := time.Duration(cfg.CancelWindowHours) * time.Hour
		insideWindow := slot.StartsAt.Sub(now) < window
		if actorIsStaff {
			if insideWindow && !cfg.AllowAdminLateCancel {
				return fmt.Errorf("%w: late cancel override is disabled", ErrCancelWindowClosed)
			}
		} else {
			if !cfg.AllowUserCancel {
				return fmt.Errorf("%w: user cancellation is disabled", ErrCancelWindowClosed)
			}
			if insideWindow {
				return fmt.Errorf("%w: less than %dh before start", ErrCancelWindowClosed, cfg.CancelWindowHours)
			}
		}

		update := map[string]any{
			"status":       model.ReservationStatusCancelled,
			"cancelled_at": now,
		}
		if err := tx.Model(&model.Reservation{}).Where("id = ?", res.ID).Updates(update).Error; err != nil {
			return fmt.Errorf("cancel reservation: %w", err)
		}
		if err := recordEventTx(tx, model.EventTypeReservationCancelled, &res.UserID, &res.ID,
			fmt.Sprintf("staff=%t", actorIsStaff)); err != nil {
			return err
		}

		res.Status = model.ReservationStatusCancelled
		res.CancelledAt = &now
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete finishes a reservation and records attendance in the same
// step. Staff-only by contract; attendance must be present or absent.
func (s *BookingService) Complete(ctx context.Context, reservationID uuid.UUID, attendance model.AttendanceStatus) (*model.Reservation, error) {
	if attendance != model.AttendancePresent && attendance != model.AttendanceAbsent {
		return nil, fmt.Errorf("%w: attendance must be present or absent", ErrValidation)
	}
	return s.transition(ctx, reservationID, model.ReservationStatusCompleted,
		model.EventTypeReservationCompleted, map[string]any{"attendance_status": attendance})
}

func (s *BookingService) transition(
	ctx context.Context,
	reservationID uuid.UUID,
	to model.ReservationStatus,
	event model.EventType,
	extraUpdates map[string]any,
) (*model.Reservation, error) {
	var out *model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res model.Reservation
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			return fmt.Errorf("load reservation: %w", err)
		}
		if !canTransition(res.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidState, res.Status, to)
		}

		update := map[string]any{"status": to}
		for k, v := range extraUpdates {
			update[k] = v
		}
		if err := tx.Model(&model.Reservation{}).Where("id = ?", res.ID).Updates(update).Error; err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		if err := recordEventTx(tx, event, &res.UserID, &res.ID, ""); err != nil {
			return err
		}

		res.Status = to
		if att, ok := extraUpdates["attendance_status"]; ok {
			res.AttendanceStatus = att.(model.AttendanceStatus)
		}
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func recordEventTx(tx *gorm.DB, kind model.EventType, userID, reservationID *uuid.UUID, details string) error {
	ev := &model.Event{
		ID:            uuid.New(),
		EventType:     kind,
		UserID:        userID,
		ReservationID: reservationID,
		Details:       details,
	}
	if err := tx.Create(ev).Error; err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrReservationsDisabled) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrPastSlot) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrCancelWindowClosed) ||
		errors.Is(err, ErrItemUnavailable) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}
