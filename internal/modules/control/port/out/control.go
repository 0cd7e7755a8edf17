package out

import (
	"context"

	"grafik/internal/modules/control/domain"
)

type ControlGateway interface {
	Summary(ctx context.Context, month string) (domain.Summary, error)
	// Record stores a late, extra or absence event.
	Record(ctx context.Context, rec domain.Record) (domain.Event, error)
	AddShift(ctx context.Context, rec domain.Record) (domain.Event, int64, error)
	Delete(ctx context.Context, id int64, reason string) error
	Deleted(ctx context.Context) ([]domain.DeletedEntry, error)
	DeletedDetail(ctx context.Context, id int64) (domain.DeletedDetail, error)
	// Report returns an empty report when none was saved for the key.
	Report(ctx context.Context, key domain.ReportKey) (domain.Report, error)
	SaveReport(ctx context.Context, report domain.Report) error
}
