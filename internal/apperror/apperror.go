package apperror

import (
	"errors"
	"fmt"
)

// Kind категория ошибки бизнес-логики
type Kind string

const (
	KindInternal          Kind = "internal"
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindAuthorization     Kind = "authorization"
	KindConflict          Kind = "conflict"
	KindState             Kind = "state"
	KindResourceExhausted Kind = "resource_exhausted"
)

// Сообщения, которые видит пользователь
const (
	MsgSlotInPast           = "slot falls in the past"
	MsgConflictingSlot      = "conflicting time slot"
	MsgBookingExists        = "booking already exists"
	MsgAvailabilityOutdated = "availability outdated"
	MsgNoHoursLeft          = "no hours left"
	MsgAlreadyExists        = "already exists"
	MsgSubjectNotTaught     = "the subject is not taught by the tutor"
	MsgNoPriorBooking       = "the student has never booked a session with the tutor"
)

// Error ошибка с категорией
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

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Authorization(format string, args ...any) *Error {
	return newError(KindAuthorization, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func State(format string, args ...any) *Error {
	return newError(KindState, format, args...)
}

func ResourceExhausted(format string, args ...any) *Error {
	return newError(KindResourceExhausted, format, args...)
}

// Wrap оборачивает err, сохраняя категорию
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf возвращает категорию ошибки, KindInternal для остальных ошибок
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is проверяет категорию ошибки
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf возвращает сообщение ошибки без обёрток
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
