package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/schedule/domain"
	scheduleout "grafik/internal/modules/schedule/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/logging"
)

const DefaultMonthTTL = 2 * time.Minute

type ScheduleService struct {
	cal     clock.BusinessCalendar
	gateway scheduleout.ScheduleGateway
	cache   scheduleout.MonthCache
	ttl     time.Duration
	log     hclog.Logger
}

// NewScheduleService wires the roster rules. cache may be nil, in which
// case every month is fetched.
func NewScheduleService(cal clock.BusinessCalendar, gateway scheduleout.ScheduleGateway, cache scheduleout.MonthCache, ttl time.Duration, logger hclog.Logger) *ScheduleService {
	if ttl <= 0 {
		ttl = DefaultMonthTTL
	}
	return &ScheduleService{cal: cal, gateway: gateway, cache: cache, ttl: ttl, log: logging.OrNull(logger).Named("schedule")}
}

func (s *ScheduleService) Calendar() clock.BusinessCalendar { return s.cal }

// Month returns the roster and whether it came from the cache.
func (s *ScheduleService) Month(ctx context.Context, year, month int, refresh bool) (domain.Month, bool, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return domain.Month{}, false, fmt.Errorf("load month: %w: %04d-%02d", apperrors.ErrInvalidInput, year, month)
	}
	key := domain.MonthKey(year, month)
	if !refresh && s.cache != nil {
		entry, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && s.fresh(entry):
			return entry.Month, true, nil
		case err != nil && !errors.Is(err, apperrors.ErrCacheMiss):
			s.log.Warn("read month cache", "key", key, "error", err)
		}
	}
	m, err := s.gateway.Month(ctx, year, month)
	if err != nil {
		return domain.Month{}, false, err
	}
	m.Year, m.Month = year, month
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, domain.CachedMonth{Month: m, StoredAt: s.cal.Now()}, s.ttl); err != nil {
			s.log.Warn("write month cache", "key", key, "error", err)
		}
	}
	return m, false, nil
}

func (s *ScheduleService) fresh(entry domain.CachedMonth) bool {
	age := s.cal.Now().Sub(entry.StoredAt)
	return age >= 0 && age < s.ttl
}

// InvalidateMonth drops the entry for the month containing value, which
// may be a date or YYYY-MM.
func (s *ScheduleService) InvalidateMonth(ctx context.Context, value string) error {
	if s.cache == nil {
		return nil
	}
	year, month, err := clock.MonthOf(value)
	if err != nil {
		return fmt.Errorf("invalidate month: %w: %w", apperrors.ErrInvalidInput, err)
	}
	if err := s.cache.Delete(ctx, domain.MonthKey(year, month)); err != nil {
		return fmt.Errorf("invalidate month: %w", err)
	}
	return nil
}

func (s *ScheduleService) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("invalidate months: %w", err)
	}
	return nil
}

func (s *ScheduleService) Day(ctx context.Context, date string) (domain.Day, error) {
	iso, err := clock.NormalizeDate(date)
	if err != nil {
		return domain.Day{}, fmt.Errorf("load day: %w: %w", apperrors.ErrInvalidInput, err)
	}
	day, err := s.gateway.Day(ctx, iso)
	if err != nil {
		return domain.Day{}, err
	}
	if day.Date == "" {
		day.Date = iso
	}
	return day.Sorted(), nil
}

func (s *ScheduleService) MyShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.gateway.MyShifts(ctx)
}

func (s *ScheduleService) NextShift(ctx context.Context) (domain.NextShift, error) {
	return s.gateway.NextShift(ctx)
}

func (s *ScheduleService) SwapCandidates(ctx context.Context, targetDate, targetCode string) ([]domain.Shift, error) {
	iso, err := clock.NormalizeDate(targetDate)
	if err != nil {
		return nil, fmt.Errorf("swap candidates: %w: %w", apperrors.ErrInvalidInput, err)
	}
	mine, err := s.gateway.MyShifts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SwapCandidates(mine, iso, targetCode, s.cal.Tomorrow()), nil
}

func (s *ScheduleService) CheckTakeover(ctx context.Context, date string) error {
	iso, err := clock.NormalizeDate(date)
	if err != nil {
		return fmt.Errorf("takeover: %w: %w", apperrors.ErrInvalidInput, err)
	}
	if iso < s.cal.Tomorrow() {
		return fmt.Errorf("takeover %s: %w", iso, apperrors.ErrPastDate)
	}
	mine, err := s.gateway.MyShifts(ctx)
	if err != nil {
		return err
	}
	if err := domain.CheckTakeover(mine, iso, s.cal.Tomorrow()); err != nil {
		return fmt.Errorf("takeover %s: %w", iso, err)
	}
	return nil
}

func (s *ScheduleService) CheckIn(ctx context.Context, shiftID int64) (domain.Shift, error) {
	if shiftID <= 0 {
		return domain.Shift{}, fmt.Errorf("check in: %w: shift id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.CheckIn(ctx, shiftID)
}

func (s *ScheduleService) CheckOut(ctx context.Context, shiftID int64) (domain.Shift, error) {
	if shiftID <= 0 {
		return domain.Shift{}, fmt.Errorf("check out: %w: shift id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.CheckOut(ctx, shiftID)
}

// SaveWorklog validates hours or the HH:MM pair locally before sending.
func (s *ScheduleService) SaveWorklog(ctx context.Context, shiftID int64, log domain.Worklog) (*float64, error) {
	if shiftID <= 0 {
		return nil, fmt.Errorf("worklog: %w: shift id is required", apperrors.ErrInvalidInput)
	}
	log.Start, log.End, log.Note = strings.TrimSpace(log.Start), strings.TrimSpace(log.End), strings.TrimSpace(log.Note)
	switch {
	case log.WorkedHours != nil:
		if *log.WorkedHours < 0 || *log.WorkedHours > 24 {
			return nil, fmt.Errorf("worklog: %w: hours must be between 0 and 24", apperrors.ErrInvalidInput)
		}
	case log.Start != "" || log.End != "":
		if _, err := clock.SpanHours(log.Start, log.End); err != nil {
			return nil, fmt.Errorf("worklog: %w: %w", apperrors.ErrInvalidInput, err)
		}
	}
	return s.gateway.SaveWorklog(ctx, shiftID, log)
}
