package repository

import (
	"fmt"
	"sync"

	"kost-service/internal/model"
	"kost-service/pkg/textstore"

	"go.uber.org/zap"
)

// PaymentFile is the record file holding payment records
const PaymentFile = "payments.txt"

// PaymentRepository is the owning store for payment records. Payments are not
// validated against tenant existence; callers must handle orphaned payments.
type PaymentRepository struct {
	mu       sync.RWMutex
	store    *textstore.Store
	log      *zap.Logger
	payments []model.Payment
}

// NewPaymentRepository creates the repository and loads the payment file
func NewPaymentRepository(store *textstore.Store, log *zap.Logger) (*PaymentRepository, error) {
	r := &PaymentRepository{
		store: store,
		log:   log.With(zap.String("repository", "payments")),
	}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh discards the in-memory list and reloads it from the record file
func (r *PaymentRepository) Refresh() error {
	lines, err := r.store.ReadAllLines(PaymentFile)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}

	payments, skipped := model.ParsePayments(lines)
	for _, s := range skipped {
		r.log.Warn("skipping malformed payment record",
			zap.Int("line", s.Number),
			zap.String("reason", s.Reason))
	}

	r.mu.Lock()
	r.payments = payments
	r.mu.Unlock()
	return nil
}

func (r *PaymentRepository) save() error {
	lines := make([]string, len(r.payments))
	for i, payment := range r.payments {
		lines[i] = payment.Record()
	}
	return r.store.WriteAllLines(PaymentFile, lines)
}

// Create appends the payment and persists the full list. On a failed save the
// appended payment is removed again.
func (r *PaymentRepository) Create(payment model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = append(r.payments, payment)
	if err := r.save(); err != nil {
		r.payments = r.payments[:len(r.payments)-1]
		return fmt.Errorf("create payment %s: %w", payment.ID, err)
	}
	return nil
}

// GetAll returns a copy of all payments
func (r *PaymentRepository) GetAll() []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]model.Payment, len(r.payments))
	copy(payments, r.payments)
	return payments
}

// GetByID returns the payment with the given id
func (r *PaymentRepository) GetByID(id string) (model.Payment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.ID == id {
			return payment, true
		}
	}
	return model.Payment{}, false
}

// Update replaces the payment with the same id and persists the full list. On
// a failed save the previous record is restored.
func (r *PaymentRepository) Update(payment model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(payment.ID)
	if idx < 0 {
		return fmt.Errorf("update payment %s: %w", payment.ID, ErrNotFound)
	}

	prev := r.payments[idx]
	r.payments[idx] = payment
	if err := r.save(); err != nil {
		r.payments[idx] = prev
		return fmt.Errorf("update payment %s: %w", payment.ID, err)
	}
	return nil
}

// Delete removes the payment and persists the full list. On a failed save the
// payment is re-inserted.
func (r *PaymentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete payment %s: %w", id, ErrNotFound)
	}

	removed := r.payments[idx]
	r.payments = append(r.payments[:idx], r.payments[idx+1:]...)
	if err := r.save(); err != nil {
		r.payments = append(r.payments[:idx], append([]model.Payment{removed}, r.payments[idx:]...)...)
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

// GenerateNewID returns the next sequential payment id (P001, P002, ...)
func (r *PaymentRepository) GenerateNewID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.payments))
	for i, payment := range r.payments {
		ids[i] = payment.ID
	}
	return nextID(model.PaymentIDPrefix, ids)
}

// ByPeriod returns the payments recorded for the given period label
func (r *PaymentRepository) ByPeriod(period string) []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []model.Payment
	for _, payment := range r.payments {
		if payment.Period == period {
			payments = append(payments, payment)
		}
	}
	return payments
}

// ByTenant returns the payments recorded for the given tenant
func (r *PaymentRepository) ByTenant(tenantID string) []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []model.Payment
	for _, payment := range r.payments {
		if payment.TenantID == tenantID {
			payments = append(payments, payment)
		}
	}
	return payments
}

// Paid returns the Paid payments recorded for the given period
func (r *PaymentRepository) Paid(period string) []model.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []model.Payment
	for _, payment := range r.payments {
		if payment.Period == period && payment.Status == model.PaymentStatusPaid {
			payments = append(payments, payment)
		}
	}
	return payments
}

// TotalPaid returns the summed amount of Paid payments in the given period
func (r *PaymentRepository) TotalPaid(period string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	for _, payment := range r.payments {
		if payment.Period == period && payment.Status == model.PaymentStatusPaid {
			total += payment.Amount
		}
	}
	return total
}

func (r *PaymentRepository) indexOf(id string) int {
	for i, payment := range r.payments {
		if payment.ID == id {
			return i
		}
	}
	return -1
}
