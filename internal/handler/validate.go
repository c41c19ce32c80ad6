package handler

import (
	"time"

	"kost-service/internal/model"
)

// PeriodLayout is the billing period label format ("January 2026")
const PeriodLayout = "January 2006"

func validRoomType(t string) bool {
	switch t {
	case model.RoomTypeSingle, model.RoomTypeDouble, model.RoomTypeVIP:
		return true
	}
	return false
}

func validRoomStatus(s string) bool {
	switch s {
	case model.RoomStatusAvailable, model.RoomStatusOccupied:
		return true
	}
	return false
}

func validPaymentMethod(m string) bool {
	switch m {
	case model.PaymentMethodCash, model.PaymentMethodTransfer, model.PaymentMethodEWallet:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case model.PaymentStatusPaid, model.PaymentStatusUnpaid, model.PaymentStatusLate:
		return true
	}
	return false
}

func validPeriod(p string) bool {
	_, err := time.Parse(PeriodLayout, p)
	return err == nil
}
