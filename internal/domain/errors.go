package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the boundary that reports it.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindInvalidReference
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidReference:
		return "invalid_reference"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrCartNotFound     = &Error{Kind: KindNotFound, Message: "cart not found"}
	ErrCartItemNotFound = &Error{Kind: KindNotFound, Message: "cart item not found"}
	ErrProductNotFound  = &Error{Kind: KindNotFound, Message: "product not found"}
	ErrOrderNotFound    = &Error{Kind: KindNotFound, Message: "order not found"}

	ErrInvalidQuantity  = &Error{Kind: KindValidation, Message: "quantity must be at least 1"}
	ErrQuantityTooLarge = &Error{Kind: KindValidation, Message: "quantity is too large"}
	ErrNoOrderItems     = &Error{Kind: KindValidation, Message: "no order items"}
	ErrCannotCancel     = &Error{Kind: KindValidation, Message: "cannot cancel this order"}
	ErrCurrencyMismatch = &Error{Kind: KindValidation, Message: "currency does not match cart currency"}

	ErrInvalidProductRef = &Error{Kind: KindInvalidReference, Message: "invalid product in order items"}

	ErrForbidden        = &Error{Kind: KindForbidden, Message: "not authorized"}
	ErrAdminOnly        = &Error{Kind: KindForbidden, Message: "not authorized as admin"}
	ErrDuplicateOrder   = &Error{Kind: KindConflict, Message: "order with this idempotency key was already placed"}
	ErrOrderNumberTaken = &Error{Kind: KindConflict, Message: "order number already exists"}
)

// Errorf builds a new classified error. The message is shown to API callers.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost classified error in the chain,
// KindUnexpected when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// MessageOf returns the caller-facing message of a classified error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
