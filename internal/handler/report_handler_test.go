package handler

import (
	"bytes"
	"testing"
	"time"

	"kost-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()

	require.NoError(t, env.rooms.Create(model.Room{
		ID: "R001", RoomNumber: "101", Type: model.RoomTypeSingle,
		Price: 1500000, Status: model.RoomStatusOccupied,
	}))
	require.NoError(t, env.rooms.Create(model.Room{
		ID: "R002", RoomNumber: "102", Type: model.RoomTypeDouble,
		Price: 2000000, Status: model.RoomStatusAvailable,
	}))

	require.NoError(t, env.tenants.Create(model.Tenant{
		ID: "T001", Name: "Budi", RoomID: "R001",
		MoveInDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:     model.TenantStatusActive,
	}))

	payments := []model.Payment{
		{ID: "P001", TenantID: "T001", Period: "March 2026",
			PaymentDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Amount:      1500000, Method: model.PaymentMethodCash, Status: model.PaymentStatusPaid},
		{ID: "P002", TenantID: "T001", Period: "March 2026",
			PaymentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			Amount:      200000, Method: model.PaymentMethodTransfer, Status: model.PaymentStatusLate},
		{ID: "P003", TenantID: "T001", Period: "April 2026",
			PaymentDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			Amount:      1500000, Method: model.PaymentMethodCash, Status: model.PaymentStatusUnpaid},
	}
	for _, p := range payments {
		require.NoError(t, env.payments.Create(p))
	}
}

func TestBuildMonthlySummary(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)
	h := NewReportHandler(env.rooms, env.tenants, env.payments)

	summary := h.buildMonthlySummary("March 2026")

	assert.Equal(t, 2, summary.TotalRooms)
	assert.Equal(t, 1, summary.AvailableRooms)
	assert.Equal(t, 1, summary.OccupiedRooms)
	assert.Equal(t, 1, summary.ActiveTenants)
	assert.Equal(t, 2, summary.TotalPayments)
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 0, summary.UnpaidCount)
	assert.Equal(t, 1, summary.LateCount)
	// Late payments do not count toward the collected amount.
	assert.Equal(t, 1500000.0, summary.CollectedAmount)
}

func TestGenerateMonthlyReport(t *testing.T) {
	env := newTestEnv(t)
	seedReportData(t, env)
	h := NewReportHandler(env.rooms, env.tenants, env.payments)

	summary := h.buildMonthlySummary("March 2026")
	data, err := generateMonthlyReport(summary, env.payments.ByPeriod("March 2026"))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	period, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "March 2026", period)

	firstPayment, err := f.GetCellValue("Payments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "P001", firstPayment)
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, validPeriod("March 2026"))
	assert.True(t, validPeriod("January 2025"))
	assert.False(t, validPeriod("2026-03"))
	assert.False(t, validPeriod("Maret 2026"))
	assert.False(t, validPeriod(""))
}
