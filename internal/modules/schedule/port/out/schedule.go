package out

import (
	"context"
	"time"

	"grafik/internal/modules/schedule/domain"
)

type ScheduleGateway interface {
	Month(ctx context.Context, year, month int) (domain.Month, error)
	Day(ctx context.Context, date string) (domain.Day, error)
	MyShifts(ctx context.Context) ([]domain.Shift, error)
	NextShift(ctx context.Context) (domain.NextShift, error)
	CheckIn(ctx context.Context, shiftID int64) (domain.Shift, error)
	CheckOut(ctx context.Context, shiftID int64) (domain.Shift, error)
	SaveWorklog(ctx context.Context, shiftID int64, log domain.Worklog) (*float64, error)
}

// MonthCache stores month rosters by domain.MonthKey. Get reports
// apperrors.ErrCacheMiss for absent or expired entries.
type MonthCache interface {
	Get(ctx context.Context, key string) (domain.CachedMonth, error)
	Put(ctx context.Context, key string, entry domain.CachedMonth, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
