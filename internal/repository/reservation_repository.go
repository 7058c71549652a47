package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

type ReservationRepository interface {
	// Reservation with its order lines.
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	// Create a reservation.
	Create(ctx context.Context, reservation *model.Reservation) error
	// Whether an active (pending/confirmed) reservation holds the slot.
	ActiveExistsForSlot(ctx context.Context, slotID uuid.UUID) (bool, error)
	// Slot IDs held by active reservations on a date.
	ActiveSlotIDsByDate(ctx context.Context, date datatypes.Date) ([]uuid.UUID, error)
	// Reservations of one user within a creation-time range, newest first.
	ListByUserAndRange(
		ctx context.Context,
		userID string,
		from, to time.Time,
		limit, offset int,
	) ([]model.Reservation, int64, error)
}

// GORM-backed implementation.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormReservationRepository) ActiveExistsForSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("slot_id = ?", slotID).
		Where("status IN ?", model.ActiveReservationStatuses).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormReservationRepository) ActiveSlotIDsByDate(ctx context.Context, date datatypes.Date) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("date = ?", date).
		Where("status IN ?", model.ActiveReservationStatuses).
		Pluck("slot_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormReservationRepository) ListByUserAndRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
	limit, offset int,
) ([]model.Reservation, int64, error) {
	var (
		reservations []model.Reservation
		total        int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("user_id = ?", userID).
		Where("created_at >= ? AND created_at <= ?", from, to)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("created_at DESC").Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}
