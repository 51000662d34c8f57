package export

import (
	"io"
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/format"
)

var payrollHeader = []string{"Funcionário", "Total de horas", "Valor/hora", "Total a pagar", "Observações"}

// Payroll writes one row per employee of the batch and the grand total.
func Payroll(w io.Writer, f Format, result payroll.BatchResult) error {
	return payrollDocument(result).render(w, f)
}

func payrollDocument(result payroll.BatchResult) document {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		note := ""
		if row.Error != nil {
			note = "Falha: " + *row.Error
		}
		rows = append(rows, []string{
			row.EmployeeName,
			format.Hours(row.TotalHours),
			format.BRL(row.HourlyRate),
			format.BRL(row.TotalPayment),
			note,
		})
	}

	footer := [][2]string{
		{"Total de horas", format.Hours(result.TotalHours)},
		{"Total geral", format.BRL(result.GrandTotal)},
	}
	if result.Failed > 0 {
		footer = append(footer, [2]string{"Funcionários com falha", itoa(result.Failed)})
	}

	return document{
		Title:    "Folha de pagamento",
		Subtitle: "Período: " + displayDate(result.Start) + " a " + displayDate(result.End),
		Sheet:    "Folha de pagamento",
		Header:   payrollHeader,
		Rows:     rows,
		Footer:   footer,
		Widths:   []float64{2, 1, 1, 1.2, 1.8},
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
