package out

import (
	"time"

	"grafik/internal/modules/schedule/domain"
)

// rosterWire is one entry of /day-shifts and /month-shifts. It also backs
// the cache payload, so cached and fresh months decode the same way.
type rosterWire struct {
	UserID        int64   `json:"user_id"`
	FullName      string  `json:"full_name"`
	ShiftCode     string  `json:"shift_code"`
	Hours         float64 `json:"hours"`
	OrderIndex    *int    `json:"order_index"`
	IsCoordinator bool    `json:"is_coordinator"`
	IsZmiwaka     bool    `json:"is_zmiwaka"`
	IsBarToday    *bool   `json:"is_bar_today,omitempty"`
	Lounge        string  `json:"lounge"`
	CoordLounge   string  `json:"coord_lounge"`
}

type slotsWire struct {
	Date    string       `json:"date,omitempty"`
	Morning []rosterWire `json:"morning"`
	Evening []rosterWire `json:"evening"`
}

type cachedMonthWire struct {
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	StoredAt time.Time            `json:"stored_at"`
	Days     map[string]slotsWire `json:"days"`
}

type shiftWire struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id"`
	FullName    string   `json:"full_name"`
	ShiftDate   string   `json:"shift_date"`
	ShiftCode   string   `json:"shift_code"`
	Hours       float64  `json:"hours"`
	WorkedHours *float64 `json:"worked_hours"`
	Lounge      string   `json:"lounge"`
	CoordLounge string   `json:"coord_lounge"`
	ActualStart string   `json:"actual_start"`
	ActualEnd   string   `json:"actual_end"`
}

func (w rosterWire) domain() domain.Assignment {
	return domain.Assignment{
		UserID:      w.UserID,
		FullName:    w.FullName,
		Code:        w.ShiftCode,
		Hours:       w.Hours,
		OrderIndex:  w.OrderIndex,
		Coordinator: w.IsCoordinator,
		Dishwasher:  w.IsZmiwaka,
		BarToday:    w.IsBarToday,
		Lounge:      w.Lounge,
		CoordLounge: w.CoordLounge,
	}
}

func rosterFromDomain(a domain.Assignment) rosterWire {
	return rosterWire{
		UserID:        a.UserID,
		FullName:      a.FullName,
		ShiftCode:     a.Code,
		Hours:         a.Hours,
		OrderIndex:    a.OrderIndex,
		IsCoordinator: a.Coordinator,
		IsZmiwaka:     a.Dishwasher,
		IsBarToday:    a.BarToday,
		Lounge:        a.Lounge,
		CoordLounge:   a.CoordLounge,
	}
}

func (w slotsWire) domain(date string) domain.Day {
	day := domain.Day{Date: date, Morning: make([]domain.Assignment, 0, len(w.Morning)), Evening: make([]domain.Assignment, 0, len(w.Evening))}
	for _, r := range w.Morning {
		day.Morning = append(day.Morning, r.domain())
	}
	for _, r := range w.Evening {
		day.Evening = append(day.Evening, r.domain())
	}
	return day
}

func slotsFromDomain(day domain.Day) slotsWire {
	out := slotsWire{Morning: make([]rosterWire, 0, len(day.Morning)), Evening: make([]rosterWire, 0, len(day.Evening))}
	for _, a := range day.Morning {
		out.Morning = append(out.Morning, rosterFromDomain(a))
	}
	for _, a := range day.Evening {
		out.Evening = append(out.Evening, rosterFromDomain(a))
	}
	return out
}

func monthFromWire(year, month int, days map[string]slotsWire) domain.Month {
	m := domain.Month{Year: year, Month: month, Days: make(map[string]domain.Day, len(days))}
	for date, slots := range days {
		m.Days[date] = slots.domain(date)
	}
	return m
}

func cachedToWire(entry domain.CachedMonth) cachedMonthWire {
	out := cachedMonthWire{Year: entry.Month.Year, Month: entry.Month.Month, StoredAt: entry.StoredAt, Days: make(map[string]slotsWire, len(entry.Month.Days))}
	for date, day := range entry.Month.Days {
		out.Days[date] = slotsFromDomain(day)
	}
	return out
}

func (w cachedMonthWire) domain() domain.CachedMonth {
	return domain.CachedMonth{Month: monthFromWire(w.Year, w.Month, w.Days), StoredAt: w.StoredAt}
}

func (w shiftWire) domain() domain.Shift {
	return domain.Shift{
		ID:          w.ID,
		UserID:      w.UserID,
		FullName:    w.FullName,
		Date:        w.ShiftDate,
		Code:        w.ShiftCode,
		Hours:       w.Hours,
		WorkedHours: w.WorkedHours,
		Lounge:      w.Lounge,
		CoordLounge: w.CoordLounge,
		ActualStart: w.ActualStart,
		ActualEnd:   w.ActualEnd,
	}
}
