package export

import (
	"bytes"
	"fmt"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/service"

	"github.com/xuri/excelize/v2"
)

// ManifestWorkbook renders the driver manifest as an XLSX workbook ready to
// stream to the client.
func ManifestWorkbook(bookings []domain.Booking, startDate, endDate string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Manifest"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Manifest: %s - %s", startDate, endDate))
	_ = f.MergeCell(sheet, "A1", "I1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headers := []string{
		"Reference", "Pickup Time", "Client", "Phone", "Service",
		"Pickup", "Drop-off", "Pax", "Status",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 3
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), service.FormatBookingRef(b.ID))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.PickupTime)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.ClientName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.Phone)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(b.ServiceType))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), b.PickupLocation)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), b.DropoffLocation)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), b.Pax)
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), string(b.Status))
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 22)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "D", 16)
	_ = f.SetColWidth(sheet, "E", "G", 24)
	_ = f.SetColWidth(sheet, "H", "I", 12)
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// FinancialReportWorkbook renders invoices, expenses and the period summary
// on separate sheets.
func FinancialReportWorkbook(report *service.FinancialReport, startDate, endDate string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	invSheet := "Invoices"
	index, err := f.NewSheet(invSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	invHeaders := []string{"Date", "Client", "Subtotal", "VAT", "Total", "Currency", "Paid"}
	for i, header := range invHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(invSheet, cell, header)
		_ = f.SetCellStyle(invSheet, cell, cell, headerStyle)
	}
	for i, inv := range report.Invoices {
		row := i + 2
		_ = f.SetCellValue(invSheet, fmt.Sprintf("A%d", row), inv.Date)
		_ = f.SetCellValue(invSheet, fmt.Sprintf("B%d", row), inv.ClientName)
		_ = f.SetCellValue(invSheet, fmt.Sprintf("C%d", row), inv.Subtotal)
		_ = f.SetCellValue(invSheet, fmt.Sprintf("D%d", row), inv.TaxAmount)
		_ = f.SetCellValue(invSheet, fmt.Sprintf("E%d", row), inv.Total)
		_ = f.SetCellValue(invSheet, fmt.Sprintf("F%d", row), string(inv.Currency))
		_ = f.SetCellValue(invSheet, fmt.Sprintf("G%d", row), boolToYesNo(inv.Paid))
	}
	_ = f.SetColWidth(invSheet, "A", "B", 24)
	_ = f.SetColWidth(invSheet, "C", "G", 12)

	expSheet := "Expenses"
	if _, err := f.NewSheet(expSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	expHeaders := []string{"Date", "Category", "Description", "Amount", "Currency", "VAT Amount", "Reference"}
	for i, header := range expHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(expSheet, cell, header)
		_ = f.SetCellStyle(expSheet, cell, cell, headerStyle)
	}
	for i, exp := range report.Expenses {
		row := i + 2
		_ = f.SetCellValue(expSheet, fmt.Sprintf("A%d", row), exp.Date)
		_ = f.SetCellValue(expSheet, fmt.Sprintf("B%d", row), string(exp.Category))
		_ = f.SetCellValue(expSheet, fmt.Sprintf("C%d", row), exp.Description)
		_ = f.SetCellValue(expSheet, fmt.Sprintf("D%d", row), exp.Amount)
		_ = f.SetCellValue(expSheet, fmt.Sprintf("E%d", row), string(exp.Currency))
		_ = f.SetCellValue(expSheet, fmt.Sprintf("F%d", row), exp.VatAmount)
		_ = f.SetCellValue(expSheet, fmt.Sprintf("G%d", row), exp.Reference)
	}
	_ = f.SetColWidth(expSheet, "A", "C", 24)
	_ = f.SetColWidth(expSheet, "D", "G", 14)

	sumSheet := "Summary"
	if _, err := f.NewSheet(sumSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	_ = f.SetCellValue(sumSheet, "A1", fmt.Sprintf("Financial Report: %s - %s", startDate, endDate))
	summaryRows := []struct {
		label string
		value float64
	}{
		{"Total Revenue", report.Summary.TotalRevenue},
		{"Paid Revenue", report.Summary.TotalPaidRevenue},
		{"Pending Revenue", report.Summary.TotalPendingRevenue},
		{"Total Expenses", report.Summary.TotalExpenses},
		{"Net Profit", report.Summary.NetProfit},
	}
	for i, rowData := range summaryRows {
		row := i + 2
		_ = f.SetCellValue(sumSheet, fmt.Sprintf("A%d", row), rowData.label)
		_ = f.SetCellValue(sumSheet, fmt.Sprintf("B%d", row), rowData.value)
	}
	_ = f.SetColWidth(sumSheet, "A", "A", 24)
	_ = f.SetColWidth(sumSheet, "B", "B", 16)
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func boolToYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
