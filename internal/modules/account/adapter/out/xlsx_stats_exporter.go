package out

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"grafik/internal/modules/account/domain"
	accountout "grafik/internal/modules/account/port/out"
)

const statsSheet = "Stats"

type XLSXStatsExporter struct{}

func NewXLSXStatsExporter() accountout.StatsExporter {
	return XLSXStatsExporter{}
}

// Export writes the summary block first, a blank row, then one row per
// scheduled day.
func (XLSXStatsExporter) Export(stats domain.Stats, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", statsSheet); err != nil {
		return fmt.Errorf("name stats sheet: %w", err)
	}
	rows := [][]any{
		{"Month", stats.Month},
		{"Range", stats.From + " - " + stats.To},
		{"Rate (PLN/h)", stats.Rate},
		{"Tax (%)", stats.Tax},
		{"Hours total", stats.HoursTotal},
		{"Hours done", stats.HoursDone},
		{"Hours left", stats.HoursLeft},
		{"Target hours", domain.MonthlyTargetHours},
		{"Target left", stats.TargetLeft()},
		{"Gross done", stats.GrossDone},
		{"Net done", stats.NetDone},
		{"Gross all", stats.GrossAll},
		{"Net all", stats.NetAll},
		{},
		{"Date", "Code", "Hours", "Done", "Gross", "Net"},
	}
	for _, d := range stats.Daily {
		rows = append(rows, []any{d.Date, d.Code, d.Hours, d.Done, d.Gross, d.Net})
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(statsSheet, cell, &row); err != nil {
			return fmt.Errorf("write stats row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
