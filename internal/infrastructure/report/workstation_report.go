package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

var columns = []string{"ID", "Name", "Employee", "Department", "Monitor (cm)", "Adjustable chair", "Footrest", "Risk", "Compliant", "Last evaluation"}

// Summary counts workstations per risk level.
type Summary struct {
	Total     int
	Low       int
	Medium    int
	High      int
	Generated time.Time
}

func Summarize(items []*entity.Workstation, generated time.Time) Summary {
	s := Summary{Total: len(items), Generated: generated.UTC()}
	for _, w := range items {
		switch w.RiskLevel() {
		case entity.RiskLow:
			s.Low++
		case entity.RiskMedium:
			s.Medium++
		case entity.RiskHigh:
			s.High++
		}
	}
	return s
}

// ComplianceRate is the share of Low risk workstations, 0 for an empty report.
func (s Summary) ComplianceRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Low) / float64(s.Total)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// BuildXLSX renders a summary sheet and one row per workstation.
func BuildXLSX(items []*entity.Workstation, generated time.Time) ([]byte, error) {
	s := Summarize(items, generated)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "summary"
	itemsSheet := "workstations"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Ergonomic Compliance Report")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", s.Generated.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Workstations")
	_ = f.SetCellValue(summarySheet, "B4", s.Total)
	_ = f.SetCellValue(summarySheet, "A5", "Low")
	_ = f.SetCellValue(summarySheet, "B5", s.Low)
	_ = f.SetCellValue(summarySheet, "A6", "Medium")
	_ = f.SetCellValue(summarySheet, "B6", s.Medium)
	_ = f.SetCellValue(summarySheet, "A7", "High")
	_ = f.SetCellValue(summarySheet, "B7", s.High)
	_ = f.SetCellValue(summarySheet, "A8", "Compliance rate")
	_ = f.SetCellValue(summarySheet, "B8", fmt.Sprintf("%.1f%%", s.ComplianceRate()*100))

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, c)
	}
	for i, w := range items {
		row := i + 2
		values := []any{
			w.ID, w.Name, w.EmployeeName, w.Department, w.MonitorDistanceCm,
			yesNo(w.HasAdjustableChair), yesNo(w.HasFootrest), w.RiskLevel().String(),
			yesNo(w.IsCompliant()), w.LastEvaluationDate().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(itemsSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfRow returns the table cells for w encoded for the core fonts (cp1252).
// Characters outside cp1252 are replaced by tr.
func pdfRow(tr func(string) string, w *entity.Workstation) []string {
	return []string{
		fmt.Sprintf("%d", w.ID), tr(w.Name), tr(w.EmployeeName), tr(w.Department),
		fmt.Sprintf("%d", w.MonitorDistanceCm), yesNo(w.HasAdjustableChair),
		yesNo(w.HasFootrest), w.RiskLevel().String(), yesNo(w.IsCompliant()),
	}
}

// BuildPDF renders a one-table PDF of the workstations.
func BuildPDF(items []*entity.Workstation, generated time.Time) ([]byte, error) {
	s := Summarize(items, generated)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Ergonomic Compliance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", s.Generated.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Workstations: %d  (Low %d / Medium %d / High %d)", s.Total, s.Low, s.Medium, s.High))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Compliance rate: %.1f%%", s.ComplianceRate()*100))
	pdf.Ln(8)

	widths := []float64{15, 45, 45, 40, 25, 25, 20, 20, 20}
	headers := columns[:len(widths)]
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, w := range items {
		for i, c := range pdfRow(tr, w) {
			align := "L"
			if i == 0 || i == 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
