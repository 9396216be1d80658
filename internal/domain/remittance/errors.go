package remittance

import "errors"

var (
	ErrReceiptNotFound   = errors.New("remittance receipt not found")
	ErrDayAlreadyClosed  = errors.New("daily closing already exists for this date")
	ErrNothingToClose    = errors.New("no receipts recorded for this date")
	ErrClosingNotFound   = errors.New("daily closing not found")
	ErrUnknownCurrency   = errors.New("unknown currency code")
	ErrReceiptAfterClose = errors.New("cannot record a receipt for a closed date")
)
