package tickets

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// 共通エラーコード（必要に応じて追加）
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInternal          = "INTERNAL"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
)

func NewNotFoundError(msg string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: msg,
	}
}

func NewInvalidArgumentError(msg string) error {
	return &DomainError{
		Code:    ErrCodeInvalidArgument,
		Message: msg,
	}
}

func NewConflictError(msg string) error {
	return &DomainError{
		Code:    ErrCodeConflict,
		Message: msg,
	}
}

func NewInvalidTransitionError(from, to string) error {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition ticket from %s to %s", from, to),
	}
}

func ToHTTPStatus(err error) int {
	if de, ok := err.(*DomainError); ok {
		switch de.Code {
		case ErrCodeInvalidArgument:
			return 400
		case ErrCodeNotFound:
			return 404
		case ErrCodeConflict, ErrCodeInvalidTransition:
			return 409
		}
	}
	return 500
}
