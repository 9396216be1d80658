package expense

import "errors"

var (
	ErrVoucherNotFound = errors.New("expense voucher not found")
	ErrVoucherDecided  = errors.New("expense voucher already decided")
)
