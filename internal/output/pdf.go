package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"firesim/internal/analysis"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders a printable A4 report.
type PDFFormatter struct{}

func (PDFFormatter) Name() string { return "pdf" }

func (PDFFormatter) Format(rep *Report) ([]byte, error) {
	doc := &pdfReport{
		pdf: fpdf.New("P", "mm", "A4", ""),
		rep: rep,
	}
	doc.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.pdf.SetAutoPageBreak(true, pdfMarginBottom)

	doc.addTitlePage()
	doc.addKeyMetrics()
	if rep.Ensemble != nil {
		doc.addEnsembleSummary()
	}
	if rep.Result != nil {
		doc.addYearlyTable()
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf *fpdf.Fpdf
	rep *Report
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(50)
	r.pdf.CellFormat(pdfContentWidth, 15, "Retirement Simulation Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWidth, 10, r.rep.GeneratedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
}

func (r *pdfReport) sectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *pdfReport) metricRow(label, value string) {
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.CellFormat(70, 7, label, "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat(pdfContentWidth-70, 7, value, "", 1, "L", false, 0, "")
}

func (r *pdfReport) addKeyMetrics() {
	m := r.rep.Metrics
	r.pdf.AddPage()
	r.sectionHeader("Key Metrics")

	if m.RetirementAge != nil {
		r.metricRow("Retirement age", fmt.Sprintf("%d", *m.RetirementAge))
	}
	if m.PortfolioAtRetirement != nil {
		r.metricRow("Portfolio at retirement", FormatCurrency(*m.PortfolioAtRetirement))
	}
	if m.RequiredPortfolio != nil {
		r.metricRow("Required portfolio", FormatCurrency(*m.RequiredPortfolio))
	}
	if m.BankruptcyAge != nil {
		r.metricRow("Portfolio depleted at age", fmt.Sprintf("%d", *m.BankruptcyAge))
	}
	r.metricRow("Final portfolio", FormatCurrency(m.FinalPortfolio))
	r.metricRow("Lifetime taxes", FormatCurrency(m.LifetimeTaxes))
	if m.LifetimePenalties.IsPositive() {
		r.metricRow("Lifetime penalties", FormatCurrency(m.LifetimePenalties))
	}
	r.metricRow("Plan succeeds", fmt.Sprintf("%t", m.Success))
}

func (r *pdfReport) addEnsembleSummary() {
	e := r.rep.Ensemble
	r.pdf.Ln(6)
	r.sectionHeader("Monte Carlo Summary")

	r.metricRow("Simulations", fmt.Sprintf("%d (%s mode)", e.NumSimulations, e.Mode))
	r.metricRow("Success rate", FormatPercentage(e.SuccessRate))
	r.metricRow("Median final balance", FormatCurrency(e.FinalBalances.Median))
	r.metricRow("Mean final balance", FormatCurrency(e.FinalBalances.Mean))
	r.metricRow("Worst final balance", FormatCurrency(e.FinalBalances.Min))
	r.metricRow("Best final balance", FormatCurrency(e.FinalBalances.Max))

	if len(e.Bands) == 0 {
		return
	}
	r.pdf.Ln(6)
	r.sectionHeader("Portfolio Percentiles by Age")

	widths := []float64{20, 32, 32, 32, 32, 32}
	headers := []string{"Age", "P10", "P25", "P50", "P75", "P90"}
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(230, 236, 245)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 9)
	for _, b := range e.Bands {
		r.pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", b.Age), "1", 0, "C", false, 0, "")
		for i, v := range []string{
			b.P10.StringFixed(0), b.P25.StringFixed(0), b.P50.StringFixed(0),
			b.P75.StringFixed(0), b.P90.StringFixed(0),
		} {
			r.pdf.CellFormat(widths[i+1], 6, v, "1", 0, "R", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *pdfReport) addYearlyTable() {
	rows := analysis.YearlyTable(r.rep.Result)
	if len(rows) == 0 {
		return
	}
	r.pdf.AddPage()
	r.sectionHeader("Year by Year")

	widths := []float64{14, 16, 26, 26, 26, 22, 22, 28}
	headers := []string{"Age", "Year", "Income", "Expenses", "Taxes", "Contrib", "Withdr", "Balance"}
	r.pdf.SetFont("Arial", "B", 8)
	r.pdf.SetFillColor(230, 236, 245)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		cells := []string{
			fmt.Sprintf("%d", row.Age),
			fmt.Sprintf("%d", row.Year),
			row.Income.StringFixed(0),
			row.Expenses.StringFixed(0),
			row.Taxes.StringFixed(0),
			row.Contributions.StringFixed(0),
			row.Withdrawals.StringFixed(0),
			row.Balance.StringFixed(0),
		}
		for i, c := range cells {
			align := "R"
			if i < 2 {
				align = "C"
			}
			r.pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}
