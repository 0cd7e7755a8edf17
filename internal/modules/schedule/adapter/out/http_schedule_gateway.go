package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"grafik/internal/modules/schedule/domain"
	scheduleout "grafik/internal/modules/schedule/port/out"
	"grafik/internal/platform/httpapi"
)

type HTTPScheduleGateway struct {
	client *httpapi.Client
}

func NewHTTPScheduleGateway(client *httpapi.Client) scheduleout.ScheduleGateway {
	return &HTTPScheduleGateway{client: client}
}

func (g *HTTPScheduleGateway) Month(ctx context.Context, year, month int) (domain.Month, error) {
	var days map[string]slotsWire
	query := url.Values{"year": {strconv.Itoa(year)}, "month": {strconv.Itoa(month)}}
	if err := g.client.Get(ctx, "/month-shifts", query, &days); err != nil {
		return domain.Month{}, fmt.Errorf("load month %04d-%02d: %w", year, month, err)
	}
	return monthFromWire(year, month, days), nil
}

func (g *HTTPScheduleGateway) Day(ctx context.Context, date string) (domain.Day, error) {
	var wire slotsWire
	if err := g.client.Get(ctx, "/day-shifts", url.Values{"date": {date}}, &wire); err != nil {
		return domain.Day{}, fmt.Errorf("load day %s: %w", date, err)
	}
	if wire.Date != "" {
		date = wire.Date
	}
	return wire.domain(date), nil
}

func (g *HTTPScheduleGateway) MyShifts(ctx context.Context) ([]domain.Shift, error) {
	var wire []shiftWire
	if err := g.client.Get(ctx, "/my-shifts", nil, &wire); err != nil {
		return nil, fmt.Errorf("load my shifts: %w", err)
	}
	out := make([]domain.Shift, 0, len(wire))
	for _, s := range wire {
		out = append(out, s.domain())
	}
	return out, nil
}

func (g *HTTPScheduleGateway) NextShift(ctx context.Context) (domain.NextShift, error) {
	var wire struct {
		Empty      bool    `json:"empty"`
		Date       string  `json:"date"`
		Code       string  `json:"code"`
		Hours      float64 `json:"hours"`
		MonthTotal int     `json:"month_total"`
		MonthDone  int     `json:"month_done"`
	}
	if err := g.client.Get(ctx, "/next-shift", nil, &wire); err != nil {
		return domain.NextShift{}, fmt.Errorf("load next shift: %w", err)
	}
	return domain.NextShift{
		Empty:      wire.Empty || wire.Date == "",
		Date:       wire.Date,
		Code:       wire.Code,
		Hours:      wire.Hours,
		MonthTotal: wire.MonthTotal,
		MonthDone:  wire.MonthDone,
	}, nil
}

func (g *HTTPScheduleGateway) CheckIn(ctx context.Context, shiftID int64) (domain.Shift, error) {
	return g.mark(ctx, shiftID, "check-in")
}

func (g *HTTPScheduleGateway) CheckOut(ctx context.Context, shiftID int64) (domain.Shift, error) {
	return g.mark(ctx, shiftID, "check-out")
}

func (g *HTTPScheduleGateway) mark(ctx context.Context, shiftID int64, verb string) (domain.Shift, error) {
	var resp struct {
		Shift shiftWire `json:"shift"`
	}
	path := fmt.Sprintf("/shifts/%d/%s", shiftID, verb)
	if err := g.client.Call(ctx, httpapi.Request{Method: http.MethodPost, Path: path}, &resp); err != nil {
		return domain.Shift{}, fmt.Errorf("%s shift %d: %w", verb, shiftID, err)
	}
	return resp.Shift.domain(), nil
}

func (g *HTTPScheduleGateway) SaveWorklog(ctx context.Context, shiftID int64, log domain.Worklog) (*float64, error) {
	body := struct {
		WorkedHours *float64 `json:"worked_hours,omitempty"`
		StartTime   string   `json:"start_time,omitempty"`
		EndTime     string   `json:"end_time,omitempty"`
		Note        string   `json:"note"`
	}{WorkedHours: log.WorkedHours, StartTime: log.Start, EndTime: log.End, Note: log.Note}
	var resp struct {
		WorkedHours *float64 `json:"worked_hours"`
	}
	if err := g.client.Post(ctx, fmt.Sprintf("/my-shift/%d/worklog", shiftID), body, &resp); err != nil {
		return nil, fmt.Errorf("save worklog for shift %d: %w", shiftID, err)
	}
	return resp.WorkedHours, nil
}
