package reports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/oguzkaan/campus-events-backend/internal/participation"
)

var ErrUnsupportedFormat = errors.New("format must be one of csv, xlsx, pdf")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var rosterHeader = []string{"Full Name", "Email", "Joined At"}

// Export renders the participant roster in the requested format and returns
// the bytes together with a filename and content type for the response.
func Export(format, eventTitle string, rows []participation.Participant) ([]byte, string, string, error) {
	stamp := time.Now().Format("20060102")

	switch format {
	case FormatCSV:
		data, err := exportCSV(rows)
		return data, fmt.Sprintf("participants_%s.csv", stamp), "text/csv", err
	case FormatXLSX:
		data, err := exportExcel(eventTitle, rows)
		return data, fmt.Sprintf("participants_%s.xlsx", stamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatPDF:
		data, err := exportPDF(eventTitle, rows)
		return data, fmt.Sprintf("participants_%s.pdf", stamp), "application/pdf", err
	default:
		return nil, "", "", ErrUnsupportedFormat
	}
}

func exportCSV(rows []participation.Participant) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rosterHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{row.FullName, row.Email, row.JoinedAt.Format(time.RFC3339)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportExcel(eventTitle string, rows []participation.Participant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Participants"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Event")
	f.SetCellValue(sheet, "B1", eventTitle)

	for i, h := range rosterHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		base := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base), row.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base), row.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", base), row.JoinedAt.Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportPDF(eventTitle string, rows []participation.Participant) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Participants: "+eventTitle)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{60, 80, 50}
	for i, h := range rosterHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 8, row.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, row.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, row.JoinedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
