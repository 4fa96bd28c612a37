package exportsvc

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/grade"
)

var (
	columns = []string{"Student", "Prelim", "Midterm", "Semifinal", "Final", "Average", "Remark"}
	widths  = []float64{58, 18, 18, 20, 18, 20, 28}
)

// GradeReportPDF renders a subject's grade view as the printable seven-column
// table.
func GradeReportPDF(subjectName string, view []grade.StudentGrades) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - Student Grades Report", subjectName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s - Student Grades Report", subjectName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range view {
		cells := []string{
			row.StudentName,
			fmt.Sprintf("%.1f", row.Prelim),
			fmt.Sprintf("%.1f", row.Midterm),
			fmt.Sprintf("%.1f", row.Semifinal),
			fmt.Sprintf("%.1f", row.Final),
			fmt.Sprintf("%.2f", row.Average),
			row.Remark,
		}
		for i, cell := range cells {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 8, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering grade report")
	}
	return &buf, nil
}
