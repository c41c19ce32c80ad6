package handler

import (
	"errors"
	"net/http"
	"time"

	"kost-service/internal/model"
	"kost-service/internal/repository"
	"kost-service/pkg/logger"
	"kost-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PaymentRequest defines the structure for payment creation/update requests
type PaymentRequest struct {
	TenantID    string  `json:"tenant_id"`
	Period      string  `json:"period"`
	PaymentDate string  `json:"payment_date"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
}

// PaymentHandler serves payment CRUD requests. The tenant reference is not
// checked against the tenant repository; orphaned payments are tolerated.
type PaymentHandler struct {
	payments *repository.PaymentRepository
}

// NewPaymentHandler creates the handler
func NewPaymentHandler(payments *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) validate(req *PaymentRequest) string {
	if req.TenantID == "" {
		return "tenant_id is required"
	}
	if !validPeriod(req.Period) {
		return "period must be a month name and year, e.g. January 2026"
	}
	if req.Amount <= 0 {
		return "amount must be positive"
	}
	if !validPaymentMethod(req.Method) {
		return "method must be Cash, Transfer or E-Wallet"
	}
	if req.Status == "" {
		req.Status = model.PaymentStatusUnpaid
	}
	if !validPaymentStatus(req.Status) {
		return "status must be Paid, Unpaid or Late"
	}
	return ""
}

// Create records a new payment
func (h *PaymentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "create")

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if msg := h.validate(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.PaymentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_date must be dd/mm/yyyy"})
		}
		paymentDate = parsed
	}

	payment := model.Payment{
		ID:          h.payments.GenerateNewID(),
		TenantID:    req.TenantID,
		Period:      req.Period,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      req.Status,
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.payments.Create(payment); err != nil {
		log.Error("Failed to create payment",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create payment"})
	}

	log.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("tenant_id", payment.TenantID),
		zap.String("period", payment.Period),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusCreated, payment)
}

// List returns payments, filtered by ?period= and/or ?tenant_id=
func (h *PaymentHandler) List(c echo.Context) error {
	prometheus.RecordOperation("payment", "list")

	var payments []model.Payment
	period := c.QueryParam("period")
	tenantID := c.QueryParam("tenant_id")

	switch {
	case period != "":
		payments = h.payments.ByPeriod(period)
	case tenantID != "":
		payments = h.payments.ByTenant(tenantID)
	default:
		payments = h.payments.GetAll()
	}

	if period != "" && tenantID != "" {
		filtered := make([]model.Payment, 0, len(payments))
		for _, payment := range payments {
			if payment.TenantID == tenantID {
				filtered = append(filtered, payment)
			}
		}
		payments = filtered
	}

	return c.JSON(http.StatusOK, echo.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

// Get returns a payment by id
func (h *PaymentHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "get")

	id := c.Param("id")
	payment, ok := h.payments.GetByID(id)
	if !ok {
		log.Warn("Payment not found", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}
	return c.JSON(http.StatusOK, payment)
}

// Update replaces a payment; the id is immutable
func (h *PaymentHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "update")

	id := c.Param("id")

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("payment_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if msg := h.validate(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	existing, ok := h.payments.GetByID(id)
	if !ok {
		log.Warn("Payment not found for update", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	}

	paymentDate := existing.PaymentDate
	if req.PaymentDate != "" {
		parsed, err := time.Parse(model.DateLayout, req.PaymentDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_date must be dd/mm/yyyy"})
		}
		paymentDate = parsed
	}

	payment := model.Payment{
		ID:          existing.ID,
		TenantID:    req.TenantID,
		Period:      req.Period,
		PaymentDate: paymentDate,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      req.Status,
	}

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.payments.Update(payment); err != nil {
		log.Error("Failed to update payment", zap.String("payment_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update payment"})
	}

	log.Info("Payment updated", zap.String("payment_id", id))
	return c.JSON(http.StatusOK, payment)
}

// Delete removes a payment
func (h *PaymentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "delete")

	id := c.Param("id")

	defer prometheus.TrackStoreOperation("write")(time.Now())

	if err := h.payments.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		log.Error("Failed to delete payment", zap.String("payment_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete payment"})
	}

	log.Info("Payment deleted", zap.String("payment_id", id))
	return c.NoContent(http.StatusNoContent)
}

// Refresh reloads the payment list from the record file
func (h *PaymentHandler) Refresh(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("payment", "refresh")

	defer prometheus.TrackStoreOperation("read")(time.Now())

	if err := h.payments.Refresh(); err != nil {
		log.Error("Failed to refresh payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to refresh payments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(h.payments.GetAll())})
}
