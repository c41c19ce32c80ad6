package model

import (
	"fmt"
	"strings"
	"time"
)

// Payment methods
const (
	PaymentMethodCash     = "Cash"
	PaymentMethodTransfer = "Transfer"
	PaymentMethodEWallet  = "E-Wallet"
)

// Payment statuses
const (
	PaymentStatusPaid   = "Paid"
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusLate   = "Late"
)

// PaymentIDPrefix is the alphabetic prefix of payment identifiers (P001, ...)
const PaymentIDPrefix = "P"

const paymentMinFields = 7

// Payment represents a recorded transaction tied to a tenant and a billing
// period. The tenant reference is not validated at write time; a payment may
// outlive its tenant record.
type Payment struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Period      string    `json:"period"`
	PaymentDate time.Time `json:"payment_date"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
}

// Record serializes the payment to one delimited line
func (p Payment) Record() string {
	return strings.Join([]string{
		p.ID,
		p.TenantID,
		p.Period,
		formatDate(p.PaymentDate),
		formatAmount(p.Amount),
		p.Method,
		p.Status,
	}, Delimiter)
}

// ParsePayment parses one delimited line into a Payment
func ParsePayment(line string) (Payment, error) {
	fields, err := splitRecord(line, paymentMinFields)
	if err != nil {
		return Payment{}, fmt.Errorf("payment record: %w", err)
	}

	paymentDate, err := parseDate(fields[3])
	if err != nil {
		return Payment{}, fmt.Errorf("payment record: %w", err)
	}

	amount, err := parseAmount(fields[4])
	if err != nil {
		return Payment{}, fmt.Errorf("payment record: %w", err)
	}

	return Payment{
		ID:          fields[0],
		TenantID:    fields[1],
		Period:      fields[2],
		PaymentDate: paymentDate,
		Amount:      amount,
		Method:      fields[5],
		Status:      fields[6],
	}, nil
}

// ParsePayments parses a loaded file into payments plus skipped-line diagnostics
func ParsePayments(lines []string) ([]Payment, []SkippedLine) {
	payments := make([]Payment, 0, len(lines))
	var skipped []SkippedLine
	for i, line := range lines {
		payment, err := ParsePayment(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Number: i + 1, Line: line, Reason: err.Error()})
			continue
		}
		payments = append(payments, payment)
	}
	return payments, skipped
}
