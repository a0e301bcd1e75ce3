package orders

import "errors"

var (
	ErrNotPaymentRequest = errors.New("reference is not a payment request")
	ErrRequestNotFound   = errors.New("payment request not found")
	ErrOrderNotFound     = errors.New("sales order referenced by payment request not found")
)
