package out

import (
	"context"
	"fmt"
	"net/url"

	"grafik/internal/modules/control/domain"
	controlout "grafik/internal/modules/control/port/out"
	"grafik/internal/platform/httpapi"
)

type eventWire struct {
	ID        int64    `json:"id"`
	Kind      string   `json:"kind"`
	UserID    int64    `json:"user_id"`
	User      string   `json:"user"`
	Date      string   `json:"date"`
	Reason    string   `json:"reason"`
	Hours     *float64 `json:"hours"`
	TimeFrom  string   `json:"time_from"`
	TimeTo    string   `json:"time_to"`
	CreatedBy string   `json:"created_by"`
	CreatedAt string   `json:"created_at"`
}

func (w eventWire) domain() domain.Event {
	return domain.Event{
		ID:        w.ID,
		Kind:      domain.EventKind(w.Kind),
		UserID:    w.UserID,
		User:      w.User,
		Date:      w.Date,
		Reason:    w.Reason,
		Hours:     w.Hours,
		From:      w.TimeFrom,
		To:        w.TimeTo,
		CreatedBy: w.CreatedBy,
		CreatedAt: w.CreatedAt,
	}
}

type recordWire struct {
	UserID       int64   `json:"user_id"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	DelayMinutes *int    `json:"delay_minutes,omitempty"`
	Hours        float64 `json:"hours,omitempty"`
	From         string  `json:"from,omitempty"`
	To           string  `json:"to,omitempty"`
}

func toRecordWire(rec domain.Record) recordWire {
	return recordWire{
		UserID:       rec.UserID,
		Date:         rec.Date,
		Reason:       rec.Reason,
		DelayMinutes: rec.DelayMinutes,
		Hours:        rec.Hours,
		From:         rec.From,
		To:           rec.To,
	}
}

type HTTPControlGateway struct {
	client *httpapi.Client
}

func NewHTTPControlGateway(client *httpapi.Client) controlout.ControlGateway {
	return &HTTPControlGateway{client: client}
}

func (g *HTTPControlGateway) Summary(ctx context.Context, month string) (domain.Summary, error) {
	var wire struct {
		Events   []eventWire `json:"events"`
		Staffing []struct {
			Date         string `json:"date"`
			Morning      int    `json:"morning"`
			Evening      int    `json:"evening"`
			MorningDelta int    `json:"morning_delta"`
			EveningDelta int    `json:"evening_delta"`
		} `json:"staffing"`
	}
	if err := g.client.Get(ctx, "/control/summary", url.Values{"month": {month}}, &wire); err != nil {
		return domain.Summary{}, fmt.Errorf("control summary %s: %w", month, err)
	}
	out := domain.Summary{Month: month}
	for _, e := range wire.Events {
		out.Events = append(out.Events, e.domain())
	}
	for _, d := range wire.Staffing {
		out.Staffing = append(out.Staffing, domain.StaffingDay{
			Date:         d.Date,
			Morning:      d.Morning,
			Evening:      d.Evening,
			MorningDelta: d.MorningDelta,
			EveningDelta: d.EveningDelta,
		})
	}
	return out, nil
}

func (g *HTTPControlGateway) Record(ctx context.Context, rec domain.Record) (domain.Event, error) {
	var resp struct {
		Event eventWire `json:"event"`
	}
	if err := g.client.Post(ctx, "/control/"+string(rec.Kind), toRecordWire(rec), &resp); err != nil {
		return domain.Event{}, fmt.Errorf("record %s: %w", rec.Kind, err)
	}
	return resp.Event.domain(), nil
}

func (g *HTTPControlGateway) AddShift(ctx context.Context, rec domain.Record) (domain.Event, int64, error) {
	var resp struct {
		Event   eventWire `json:"event"`
		ShiftID int64     `json:"shift_id"`
	}
	if err := g.client.Post(ctx, "/control/add-shift", toRecordWire(rec), &resp); err != nil {
		return domain.Event{}, 0, fmt.Errorf("add shift: %w", err)
	}
	return resp.Event.domain(), resp.ShiftID, nil
}

func (g *HTTPControlGateway) Delete(ctx context.Context, id int64, reason string) error {
	body := struct {
		ID     int64  `json:"id"`
		Reason string `json:"reason"`
	}{ID: id, Reason: reason}
	if err := g.client.Post(ctx, "/control/delete", body, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

func (g *HTTPControlGateway) Deleted(ctx context.Context) ([]domain.DeletedEntry, error) {
	var wire []struct {
		EventID     int64  `json:"event_id"`
		DeletedDate string `json:"deleted_date"`
		UserName    string `json:"user_name"`
		Reason      string `json:"reason"`
	}
	if err := g.client.Get(ctx, "/control/deleted", nil, &wire); err != nil {
		return nil, fmt.Errorf("list deleted events: %w", err)
	}
	out := make([]domain.DeletedEntry, 0, len(wire))
	for _, d := range wire {
		out = append(out, domain.DeletedEntry{EventID: d.EventID, DeletedDate: d.DeletedDate, UserName: d.UserName, Reason: d.Reason})
	}
	return out, nil
}

func (g *HTTPControlGateway) DeletedDetail(ctx context.Context, id int64) (domain.DeletedDetail, error) {
	var wire struct {
		EventID       int64    `json:"event_id"`
		Kind          string   `json:"kind"`
		EventDate     string   `json:"event_date"`
		TimeFrom      string   `json:"time_from"`
		TimeTo        string   `json:"time_to"`
		Hours         *float64 `json:"hours"`
		UserName      string   `json:"user_name"`
		DeletedByName string   `json:"deleted_by_name"`
		DeletedDate   string   `json:"deleted_date"`
		Reason        string   `json:"reason"`
	}
	if err := g.client.Get(ctx, fmt.Sprintf("/control/deleted/%d", id), nil, &wire); err != nil {
		return domain.DeletedDetail{}, fmt.Errorf("deleted event %d: %w", id, err)
	}
	return domain.DeletedDetail{
		EventID:     wire.EventID,
		Kind:        domain.EventKind(wire.Kind),
		EventDate:   wire.EventDate,
		From:        wire.TimeFrom,
		To:          wire.TimeTo,
		Hours:       wire.Hours,
		UserName:    wire.UserName,
		DeletedBy:   wire.DeletedByName,
		DeletedDate: wire.DeletedDate,
		Reason:      wire.Reason,
	}, nil
}

type reportWire struct {
	ID        int64             `json:"id,omitempty"`
	Lounge    string            `json:"lounge"`
	ShiftType string            `json:"shift_type"`
	ShiftDate string            `json:"shift_date"`
	CoordName string            `json:"coord_name,omitempty"`
	Times     map[string]string `json:"times"`
	Bars      map[string]string `json:"bars"`
	Notes     map[string]string `json:"notes"`
	CreatedAt string            `json:"created_at,omitempty"`
}

func (g *HTTPControlGateway) Report(ctx context.Context, key domain.ReportKey) (domain.Report, error) {
	var wire reportWire
	query := url.Values{"lounge": {key.Lounge}, "shift_type": {key.ShiftType}, "date": {key.Date}}
	if err := g.client.Get(ctx, "/coord-panel/report", query, &wire); err != nil {
		return domain.Report{}, fmt.Errorf("shift report %s %s %s: %w", key.Lounge, key.ShiftType, key.Date, err)
	}
	out := domain.Report{ReportKey: key, ID: wire.ID, CoordName: wire.CoordName, Bars: wire.Bars, Times: wire.Times, Notes: wire.Notes, CreatedAt: wire.CreatedAt}
	// {} comes back when nothing is stored; keep the requested key.
	if wire.ShiftDate != "" {
		out.Lounge, out.ShiftType, out.Date = wire.Lounge, wire.ShiftType, wire.ShiftDate
	}
	return out, nil
}

func (g *HTTPControlGateway) SaveReport(ctx context.Context, report domain.Report) error {
	body := reportWire{
		Lounge:    report.Lounge,
		ShiftType: report.ShiftType,
		ShiftDate: report.Date,
		Times:     report.Times,
		Bars:      report.Bars,
		Notes:     report.Notes,
	}
	if err := g.client.Post(ctx, "/coord-panel/report", body, nil); err != nil {
		return fmt.Errorf("save shift report %s %s %s: %w", report.Lounge, report.ShiftType, report.Date, err)
	}
	return nil
}
