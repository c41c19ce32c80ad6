package handler

import (
	"fmt"

	"kost-service/internal/model"

	"github.com/xuri/excelize/v2"
)

// PaymentExportHeader is the column layout of the payments sheet
var PaymentExportHeader = []string{
	"Payment ID",
	"Tenant ID",
	"Period",
	"Payment Date",
	"Amount",
	"Method",
	"Status",
}

// generateMonthlyReport builds the report workbook: a summary sheet with the
// dashboard numbers and a payments sheet listing the period's records.
func generateMonthlyReport(summary MonthlySummary, payments []model.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summarySheet := "Summary"
	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	summaryRows := [][]any{
		{"Period", summary.Period},
		{"Total Rooms", summary.TotalRooms},
		{"Available Rooms", summary.AvailableRooms},
		{"Occupied Rooms", summary.OccupiedRooms},
		{"Active Tenants", summary.ActiveTenants},
		{"Payments Recorded", summary.TotalPayments},
		{"Paid", summary.PaidCount},
		{"Unpaid", summary.UnpaidCount},
		{"Late", summary.LateCount},
		{"Collected Amount", summary.CollectedAmount},
	}
	for row, pair := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &pair); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 18); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	paymentsSheet := "Payments"
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create payments sheet: %w", err)
	}

	for col, header := range PaymentExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(paymentsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(paymentsSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for row, payment := range payments {
		values := []any{
			payment.ID,
			payment.TenantID,
			payment.Period,
			payment.PaymentDate.Format(model.DateLayout),
			payment.Amount,
			payment.Method,
			payment.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(paymentsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write payment row: %w", err)
		}
	}
	if err := f.SetColWidth(paymentsSheet, "A", "G", 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
