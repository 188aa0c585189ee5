package domain

import (
	"fmt"
	"math/big"
)

// ErrorKind is a stable tag for ledger failures. Callers match on the kind
// with errors.Is instead of comparing reason strings.
type ErrorKind string

const (
	// authorization
	KindUnauthorized  ErrorKind = "unauthorized"
	KindNotOwner      ErrorKind = "not_owner"
	KindNotSeller     ErrorKind = "not_seller"
	KindNotAuthorized ErrorKind = "not_authorized"

	// validation
	KindInvalidRecipient ErrorKind = "invalid_recipient"
	KindInvalidMetadata  ErrorKind = "invalid_metadata"
	KindInvalidPrice     ErrorKind = "invalid_price"
	KindEmptyBatch       ErrorKind = "empty_batch"
	KindBatchTooLarge    ErrorKind = "batch_too_large"
	KindFeeTooHigh       ErrorKind = "fee_too_high"
	KindBadParamInput    ErrorKind = "bad_param_input"

	// state conflicts
	KindAlreadyListed      ErrorKind = "already_listed"
	KindListingNotActive   ErrorKind = "listing_not_active"
	KindNonexistentToken   ErrorKind = "nonexistent_token"
	KindSellerNoLongerOwns ErrorKind = "seller_no_longer_owns"
	KindNotApproved        ErrorKind = "not_approved"
	KindIncorrectPayment   ErrorKind = "incorrect_payment"
	KindCannotBuySelf      ErrorKind = "cannot_buy_self"
	KindNoFeesToWithdraw   ErrorKind = "no_fees_to_withdraw"
	KindInsufficientFunds  ErrorKind = "insufficient_funds"

	KindNotFound ErrorKind = "not_found"
	KindInternal ErrorKind = "internal"
)

// Error is a ledger failure. Every failed operation aborts in full, so there
// is no recoverable/fatal split; the kind tells the caller what went wrong.
type Error struct {
	Kind    ErrorKind              `json:"kind"`
	Message string                 `json:"message"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error carrying the same kind, so the sentinel instances
// below work with errors.Is regardless of attached detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthorized  = &Error{Kind: KindUnauthorized, Message: "caller is not the owner"}
	ErrNotOwner      = &Error{Kind: KindNotOwner, Message: "not the owner"}
	ErrNotSeller     = &Error{Kind: KindNotSeller, Message: "not the seller"}
	ErrNotAuthorized = &Error{Kind: KindNotAuthorized, Message: "not authorized"}

	ErrInvalidRecipient = &Error{Kind: KindInvalidRecipient, Message: "cannot mint to zero address"}
	ErrInvalidMetadata  = &Error{Kind: KindInvalidMetadata, Message: "token uri cannot be empty"}
	ErrInvalidPrice     = &Error{Kind: KindInvalidPrice, Message: "price must be greater than 0"}
	ErrEmptyBatch       = &Error{Kind: KindEmptyBatch, Message: "must mint at least one token"}
	ErrBatchTooLarge    = &Error{Kind: KindBatchTooLarge, Message: "cannot mint more than 50 tokens at once"}
	ErrFeeTooHigh       = &Error{Kind: KindFeeTooHigh, Message: "fee too high"}
	ErrBadParamInput    = &Error{Kind: KindBadParamInput, Message: "given param is not valid"}

	ErrAlreadyListed      = &Error{Kind: KindAlreadyListed, Message: "token already listed"}
	ErrListingNotActive   = &Error{Kind: KindListingNotActive, Message: "listing not active"}
	ErrNonexistentToken   = &Error{Kind: KindNonexistentToken, Message: "token does not exist"}
	ErrSellerNoLongerOwns = &Error{Kind: KindSellerNoLongerOwns, Message: "seller no longer owns token"}
	ErrNotApproved        = &Error{Kind: KindNotApproved, Message: "marketplace not approved"}
	ErrIncorrectPayment   = &Error{Kind: KindIncorrectPayment, Message: "incorrect payment amount"}
	ErrCannotBuySelf      = &Error{Kind: KindCannotBuySelf, Message: "cannot buy your own token"}
	ErrNoFeesToWithdraw   = &Error{Kind: KindNoFeesToWithdraw, Message: "no fees to withdraw"}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds, Message: "insufficient funds"}

	ErrNotFound            = &Error{Kind: KindNotFound, Message: "requested item is not found"}
	ErrInternalServerError = &Error{Kind: KindInternal, Message: "internal server error"}
)

// ErrIncorrectPaymentDetail attaches expected/actual amounts to the
// incorrect-payment kind.
func ErrIncorrectPaymentDetail(expected, actual *big.Int) *Error {
	return &Error{
		Kind:    KindIncorrectPayment,
		Message: fmt.Sprintf("incorrect payment amount: expected %s, got %s", expected, actual),
		Detail: map[string]interface{}{
			"expected": expected.String(),
			"actual":   actual.String(),
		},
	}
}

// ErrInsufficientFundsDetail attaches balance/needed amounts to the
// insufficient-funds kind.
func ErrInsufficientFundsDetail(balance, needed *big.Int) *Error {
	return &Error{
		Kind:    KindInsufficientFunds,
		Message: fmt.Sprintf("insufficient funds: balance %s, needed %s", balance, needed),
		Detail: map[string]interface{}{
			"balance": balance.String(),
			"needed":  needed.String(),
		},
	}
}
