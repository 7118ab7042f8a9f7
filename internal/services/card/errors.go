package card

import "errors"

// Service errors. Handlers map these onto HTTP statuses; the access denied
// message is deliberately generic and never says which check failed.
var (
	ErrCardNotFound      = errors.New("card not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCardExpired       = errors.New("card is expired")
	ErrCardNotActive     = errors.New("one of the cards is not active")
	ErrNonZeroBalance    = errors.New("card balance must be zero")
	ErrAlreadyBlocked    = errors.New("card is already blocked")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrSameCard          = errors.New("cannot transfer to the same card")
)
