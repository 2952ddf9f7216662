package day

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the day registry: it resolves calendar dates to SurgeryDay
// records and owns the editability lifecycle.
type Service struct {
	days   Repository
	policy Policy
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(days Repository, policy Policy, logger zerolog.Logger) *Service {
	return &Service{days: days, policy: policy, logger: logger, now: time.Now}
}

// ResolveDay returns the SurgeryDay for the given date, creating it on first
// reference. A concurrent creator losing the race on the unique date
// constraint re-fetches and returns the winning row.
func (s *Service) ResolveDay(ctx context.Context, date time.Time) (*SurgeryDay, error) {
	date = Midnight(date)

	d, err := s.days.GetByDate(ctx, date)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	d = &SurgeryDay{Date: date, Editable: s.policy.InitialEditable(date)}
	err = s.days.Create(ctx, d)
	if errors.Is(err, ErrDuplicateDate) {
		return s.days.GetByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// NextSurgeryDay resolves the default day new surgeries land on: tomorrow,
// skipping a Sunday forward to Monday when the policy says so.
func (s *Service) NextSurgeryDay(ctx context.Context) (*SurgeryDay, error) {
	tomorrow := Midnight(s.now()).AddDate(0, 0, 1)
	if s.policy.SkipSundayNext && tomorrow.Weekday() == time.Sunday {
		tomorrow = tomorrow.AddDate(0, 0, 1)
	}
	return s.ResolveDay(ctx, tomorrow)
}

// UpcomingDays resolves the next n calendar days excluding Sundays, in date
// order. Used by day pickers.
func (s *Service) UpcomingDays(ctx context.Context, n int) ([]*SurgeryDay, error) {
	today := Midnight(s.now())
	var days []*SurgeryDay
	for i := 1; i <= n; i++ {
		date := today.AddDate(0, 0, i)
		if date.Weekday() == time.Sunday {
			continue
		}
		d, err := s.ResolveDay(ctx, date)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// DayByID fetches a single day record.
func (s *Service) DayByID(ctx context.Context, id uuid.UUID) (*SurgeryDay, error) {
	return s.days.GetByID(ctx, id)
}

// ToggleEditable flips a day's editable flag unconditionally. This is the
// only way to re-open a day the nightly job has locked.
func (s *Service) ToggleEditable(ctx context.Context, id uuid.UUID) (*SurgeryDay, error) {
	d, err := s.days.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.days.SetEditable(ctx, id, !d.Editable); err != nil {
		return nil, err
	}
	d.Editable = !d.Editable
	return d, nil
}

// LockDate forces the day for the given date to non-editable. Best-effort:
// a missing row or store failure is logged, not propagated, so the nightly
// job never aborts.
func (s *Service) LockDate(ctx context.Context, date time.Time) error {
	date = Midnight(date)
	n, err := s.days.SetEditableByDate(ctx, date, false)
	if err != nil {
		s.logger.Error().Err(err).Time("date", date).Msg("failed to lock surgery day")
		return err
	}
	s.logger.Info().Time("date", date).Int64("rows", n).Msg("locked surgery day")
	return nil
}
