package export

import (
	"io"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/format"
)

var timesheetHeader = []string{"Data", "Entrada", "Saída", "Total de horas", "Observações"}

// Timesheet writes one row per reported day followed by the range totals.
// Entry and exit times are shown in the report's timezone.
func Timesheet(w io.Writer, f Format, report timesheet.RangeReport) error {
	return timesheetDocument(report).render(w, f)
}

func timesheetDocument(report timesheet.RangeReport) document {
	loc, err := time.LoadLocation(report.Timezone)
	if err != nil {
		loc = time.UTC
	}

	rows := make([][]string, 0, len(report.PerDay))
	for _, day := range report.PerDay {
		rows = append(rows, []string{
			displayDate(day.Date),
			format.ClockIn(day.Entry, loc),
			format.ClockIn(day.Exit, loc),
			format.Hours(day.TotalHours),
			format.Observations(day.Incomplete, day.Corrected),
		})
	}

	title := "Folha de ponto"
	if report.EmployeeName != "" {
		title += " - " + report.EmployeeName
	}

	return document{
		Title:    title,
		Subtitle: "Período: " + displayDate(report.Start) + " a " + displayDate(report.End) + " (" + report.Timezone + ")",
		Sheet:    "Folha de ponto",
		Header:   timesheetHeader,
		Rows:     rows,
		Footer: [][2]string{
			{"Total de horas", format.Hours(report.TotalHours)},
			{"Dias trabalhados", itoa(report.DaysWorked)},
			{"Média diária", format.Hours(report.AverageDailyHours)},
		},
		Widths: []float64{1.2, 1, 1, 1.2, 1.6},
	}
}

// displayDate turns a YYYY-MM-DD key into dd/MM/yyyy
func displayDate(key string) string {
	d, err := time.Parse(timesheet.DateLayout, key)
	if err != nil {
		return key
	}
	return format.Date(d)
}
