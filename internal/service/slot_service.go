package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/timetable"
)

// SlotService populates and prunes the slot table. Generation is an
// idempotent batch: a (table, date, start) collision counts as skipped,
// never as an error, so re-running for a populated range is a no-op.
type SlotService struct {
	db        *gorm.DB
	slotRepo  repository.SlotRepository
	tableRepo repository.TableRepository
	hoursRepo repository.WorkingHourRepository
	settings  *Settings
	clock     Clock
}

func NewSlotService(
	db *gorm.DB,
	slotRepo repository.SlotRepository,
	tableRepo repository.TableRepository,
	hoursRepo repository.WorkingHourRepository,
	settings *Settings,
	clock Clock,
) *SlotService {
	if clock == nil {
		clock = RealClock{}
	}
	return &SlotService{
		db:        db,
		slotRepo:  slotRepo,
		tableRepo: tableRepo,
		hoursRepo: hoursRepo,
		settings:  settings,
		clock:     clock,
	}
}

// Generate creates slots for [today, today+daysAhead). daysAhead <= 0
// falls back to the configured auto_generate_days_ahead.
func (s *SlotService) Generate(ctx context.Context, daysAhead int) (created, skipped int, err error) {
	cfg := s.settings.Current()
	if daysAhead <= 0 {
		daysAhead = cfg.AutoGenerateDaysAhead
	}
	step := cfg.SlotDurationMinutes
	if step <= 0 {
		return 0, 0, timetable.ErrInvalidDuration
	}

	tables, err := s.tableRepo.ListActive(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list active tables: %w", err)
	}
	hours, err := s.hoursByWeekday(ctx)
	if err != nil {
		return 0, 0, err
	}

	today := s.clock.Now()
	for offset := 0; offset < daysAhead; offset++ {
		day := today.AddDate(0, 0, offset)
		c, k, err := s.generateForDay(ctx, day, tables, hours, step)
		if err != nil {
			return created, skipped, err
		}
		created += c
		skipped += k
	}

	log.WithFields(log.Fields{
		"days_ahead": daysAhead,
		"created":    created,
		"skipped":    skipped,
	}).Info("slot generation finished")

	if created > 0 {
		s.recordEvent(ctx, model.EventTypeSlotsGenerated,
			fmt.Sprintf("created %d slots, skipped %d", created, skipped))
	}
	return created, skipped, nil
}

// CreateTable registers a cafe table. Capacity must stay within the
// model bounds and the per-guest rate must be positive.
func (s *SlotService) CreateTable(ctx context.Context, table *model.CafeTable) error {
	if table.Capacity < model.MinTableCapacity || table.Capacity > model.MaxTableCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrValidation, model.MinTableCapacity, model.MaxTableCapacity)
	}
	if table.PricePerPersonCents <= 0 {
		return fmt.Errorf("%w: price per person must be positive", ErrValidation)
	}
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// SetWorkingHours inserts or updates one weekday's opening window.
// Open days need a window that fits at least one slot of the configured
// duration.
func (s *SlotService) SetWorkingHours(ctx context.Context, weekday time.Weekday, openMin, closeMin int, closed bool) error {
	if !closed {
		step := s.settings.Current().SlotDurationMinutes
		windows, err := timetable.SplitWindows(
			timetable.TimeOfDay(openMin),
			timetable.TimeOfDay(closeMin),
			step,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if len(windows) == 0 {
			return fmt.Errorf("%w: window %s-%s fits no %d-minute slot", ErrValidation,
				timetable.TimeOfDay(openMin), timetable.TimeOfDay(closeMin), step)
		}
	}
	wh := &model.WorkingHour{
		ID:       uuid.New(),
		Weekday:  weekday,
		OpenMin:  openMin,
		CloseMin: closeMin,
		IsClosed: closed,
	}
	if err := s.hoursRepo.Upsert(ctx, wh); err != nil {
		return fmt.Errorf("upsert working hours: %w", err)
	}
	return nil
}

// EnsureForDate generates slots for a single date only when that date
// has none yet.
func (s *SlotService) EnsureForDate(ctx context.Context, day time.Time) (created int, err error) {
	n, err := s.slotRepo.CountByDate(ctx, model.DateOf(day))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	step := s.settings.Current().SlotDurationMinutes
	if step <= 0 {
		return 0, timetable.ErrInvalidDuration
	}
	tables, err := s.tableRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	hours, err := s.hoursByWeekday(ctx)
	if err != nil {
		return 0, err
	}
	created, _, err = s.generateForDay(ctx, day, tables, hours, step)
	return created, err
}

// ClearUnusedFutureSlots removes slots dated today or later that no
// reservation references.
func (s *SlotService) ClearUnusedFutureSlots(ctx context.Context) (int64, error) {
	deleted, err := s.slotRepo.DeleteUnusedFrom(ctx, model.DateOf(s.clock.Now()))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.WithField("deleted", deleted).Info("cleared unused future slots")
		s.recordEvent(ctx, model.EventTypeSlotsCleared,
			fmt.Sprintf("deleted %d unused slots", deleted))
	}
	return deleted, nil
}

func (s *SlotService) hoursByWeekday(ctx context.Context) (map[time.Weekday]model.WorkingHour, error) {
	list, err := s.hoursRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	hours := make(map[time.Weekday]model.WorkingHour, len(list))
	for _, wh := range list {
		hours[wh.Weekday] = wh
	}
	return hours, nil
}

func (s *SlotService) generateForDay(
	ctx context.Context,
	day time.Time,
	tables []model.CafeTable,
	hours map[time.Weekday]model.WorkingHour,
	stepMin int,
) (created, skipped int, err error) {
	wh, ok := hours[day.Weekday()]
	if !ok || wh.IsClosed {
		return 0, 0, nil
	}

	windows, err := timetable.SplitWindows(
		timetable.TimeOfDay(wh.OpenMin),
		timetable.TimeOfDay(wh.CloseMin),
		stepMin,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("working hours for %s: %w", day.Weekday(), err)
	}

	date := model.DateOf(day)
	for _, table := range tables {
		for _, w := range windows {
			startsAt := w.Start.At(day.UTC(), time.UTC)

			_, err := s.slotRepo.Find(ctx, table.ID, date, startsAt)
			if err == nil {
				skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return created, skipped, fmt.Errorf("lookup slot: %w", err)
			}

			slot := &model.Slot{
				ID:          uuid.New(),
				TableID:     table.ID,
				Date:        date,
				StartsAt:    startsAt,
				EndsAt:      w.End.At(day.UTC(), time.UTC),
				DurationMin: w.Duration(),
				IsActive:    true,
			}
			if err := s.slotRepo.Create(ctx, slot); err != nil {
				// A concurrent generator may have won the insert race;
				// the unique index makes that a skip, not a failure.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					skipped++
					continue
				}
				return created, skipped, fmt.Errorf("create slot: %w", err)
			}
			created++
		}
	}
	return created, skipped, nil
}

func (s *SlotService) recordEvent(ctx context.Context, kind model.EventType, details string) {
	ev := &model.Event{ID: uuid.New(), EventType: kind, Details: details}
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		log.WithError(err).Warn("record slot event")
	}
}
