package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidMethod   = errors.New("method must be one of: JazzCash, EasyPaisa, BankTransfer, Cash")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrForbiddenRole   = errors.New("only clients can record payments")
	ErrNotRideOwner    = errors.New("ride does not belong to this client")
	ErrNotOwner        = errors.New("payment does not belong to this client")
)
