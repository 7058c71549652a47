package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
)

// SlotAvailability is one slot with its reservation flag for a date.
type SlotAvailability struct {
	Slot       model.Slot
	IsReserved bool
}

// TableAvailability aggregates one table's slots on a date.
type TableAvailability struct {
	Table       model.CafeTable
	Slots       []SlotAvailability
	HasFreeSlot bool
}

// AvailabilityService projects the committed reservation state onto a
// per-table, per-slot availability view. It is read-only and computes
// from the store on every call, so a booking commit is visible to the
// next query with no cache to invalidate.
type AvailabilityService struct {
	tableRepo repository.TableRepository
	slotRepo  repository.SlotRepository
	resRepo   repository.ReservationRepository
}

func NewAvailabilityService(
	tableRepo repository.TableRepository,
	slotRepo repository.SlotRepository,
	resRepo repository.ReservationRepository,
) *AvailabilityService {
	return &AvailabilityService{
		tableRepo: tableRepo,
		slotRepo:  slotRepo,
		resRepo:   resRepo,
	}
}

// SlotFree reports whether no pending or confirmed reservation holds
// the slot. Like ListAvailability it reads committed state, so a
// booking racing this check can still win the slot first.
func (s *AvailabilityService) SlotFree(ctx context.Context, slotID uuid.UUID) (bool, error) {
	taken, err := s.resRepo.ActiveExistsForSlot(ctx, slotID)
	if err != nil {
		return false, fmt.Errorf("check slot %s: %w", slotID, err)
	}
	return !taken, nil
}

// ListAvailability returns, for each active table, its slots on the
// given date flagged reserved when a pending or confirmed reservation
// holds them.
func (s *AvailabilityService) ListAvailability(ctx context.Context, day time.Time) ([]TableAvailability, error) {
	date := model.DateOf(day)

	tables, err := s.tableRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active tables: %w", err)
	}

	reservedIDs, err := s.resRepo.ActiveSlotIDsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list reserved slots: %w", err)
	}
	reserved := make(map[uuid.UUID]struct{}, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = struct{}{}
	}

	out := make([]TableAvailability, 0, len(tables))
	for _, table := range tables {
		slots, err := s.slotRepo.ListByTableAndDate(ctx, table.ID, date)
		if err != nil {
			return nil, fmt.Errorf("list slots for table %d: %w", table.TableNumber, err)
		}

		ta := TableAvailability{Table: table, Slots: make([]SlotAvailability, 0, len(slots))}
		for _, slot := range slots {
			_, taken := reserved[slot.ID]
			ta.Slots = append(ta.Slots, SlotAvailability{Slot: slot, IsReserved: taken})
			if !taken {
				ta.HasFreeSlot = true
			}
		}
		out = append(out, ta)
	}
	return out, nil
}
