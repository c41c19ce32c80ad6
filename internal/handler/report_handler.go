package handler

import (
	"net/http"
	"time"

	"kost-service/internal/model"
	"kost-service/internal/repository"
	"kost-service/pkg/logger"
	"kost-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MonthlySummary is the dashboard aggregation for one billing period
type MonthlySummary struct {
	Period          string  `json:"period"`
	TotalRooms      int     `json:"total_rooms"`
	AvailableRooms  int     `json:"available_rooms"`
	OccupiedRooms   int     `json:"occupied_rooms"`
	ActiveTenants   int     `json:"active_tenants"`
	TotalPayments   int     `json:"total_payments"`
	PaidCount       int     `json:"paid_count"`
	UnpaidCount     int     `json:"unpaid_count"`
	LateCount       int     `json:"late_count"`
	CollectedAmount float64 `json:"collected_amount"`
}

// ReportHandler serves the dashboard summary and its Excel export
type ReportHandler struct {
	rooms    *repository.RoomRepository
	tenants  *repository.TenantRepository
	payments *repository.PaymentRepository
}

// NewReportHandler creates the handler
func NewReportHandler(rooms *repository.RoomRepository, tenants *repository.TenantRepository, payments *repository.PaymentRepository) *ReportHandler {
	return &ReportHandler{rooms: rooms, tenants: tenants, payments: payments}
}

// buildMonthlySummary recomputes the dashboard numbers from the repositories.
// Nothing is cached; the record lists are small.
func (h *ReportHandler) buildMonthlySummary(period string) MonthlySummary {
	summary := MonthlySummary{
		Period:         period,
		TotalRooms:     len(h.rooms.GetAll()),
		AvailableRooms: h.rooms.CountByStatus(model.RoomStatusAvailable),
		OccupiedRooms:  h.rooms.CountByStatus(model.RoomStatusOccupied),
		ActiveTenants:  h.tenants.CountActive(),
	}

	for _, payment := range h.payments.ByPeriod(period) {
		summary.TotalPayments++
		switch payment.Status {
		case model.PaymentStatusPaid:
			summary.PaidCount++
			summary.CollectedAmount += payment.Amount
		case model.PaymentStatusUnpaid:
			summary.UnpaidCount++
		case model.PaymentStatusLate:
			summary.LateCount++
		}
	}

	return summary
}

func (h *ReportHandler) period(c echo.Context) (string, bool) {
	period := c.QueryParam("period")
	if period == "" {
		period = time.Now().Format(PeriodLayout)
	}
	return period, validPeriod(period)
}

// Monthly returns the dashboard summary for one period
func (h *ReportHandler) Monthly(c echo.Context) error {
	prometheus.RecordOperation("report", "monthly")

	period, ok := h.period(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be a month name and year, e.g. January 2026"})
	}

	summary := h.buildMonthlySummary(period)

	// Keep the occupancy gauges in step with the dashboard
	prometheus.UpdateOccupancy(summary.AvailableRooms, summary.OccupiedRooms, summary.ActiveTenants)

	return c.JSON(http.StatusOK, summary)
}

// MonthlyExport returns the summary and period payments as an Excel workbook
func (h *ReportHandler) MonthlyExport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("report", "monthly_export")

	period, ok := h.period(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "period must be a month name and year, e.g. January 2026"})
	}

	summary := h.buildMonthlySummary(period)
	data, err := generateMonthlyReport(summary, h.payments.ByPeriod(period))
	if err != nil {
		log.Error("Failed to generate report workbook",
			zap.String("period", period),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate report"})
	}

	filename := "monthly-report-" + time.Now().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
