package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	CodeBadArgument     = "BAD_ARGUMENT"
	CodeOperationFailed = "OPERATION_FAILED"
	CodeDoesNotExist    = "DOES_NOT_EXIST"
)

var (
	ErrBadArgument = New(
		CodeBadArgument,
		"Bad argument",
		http.StatusBadRequest,
	)

	ErrOperationFailed = New(
		CodeOperationFailed,
		"Operation failed",
		http.StatusInternalServerError,
	)

	ErrDoesNotExist = New(
		CodeDoesNotExist,
		"Resource does not exist",
		http.StatusNotFound,
	)
)

// BadArgument - некорректный ввод; reason отдается клиенту как есть
func BadArgument(reason string) *AppError {
	return New(CodeBadArgument, reason, http.StatusBadRequest)
}

// BadArgumentf - BadArgument с форматированием
func BadArgumentf(format string, args ...interface{}) *AppError {
	return BadArgument(fmt.Sprintf(format, args...))
}

// OperationFailed - сбой хранилища или вычисления. op попадает в лог,
// клиенту уходит только общее сообщение
func OperationFailed(op string, cause error) *AppError {
	return New(CodeOperationFailed, op+" failed", http.StatusInternalServerError).WithCause(cause)
}

// DoesNotExist - запрошенный ресурс отсутствует
func DoesNotExist(what string) *AppError {
	return New(CodeDoesNotExist, what+" does not exist", http.StatusNotFound)
}

func IsBadArgument(err error) bool {
	return stderrors.Is(err, ErrBadArgument)
}

func IsOperationFailed(err error) bool {
	return stderrors.Is(err, ErrOperationFailed)
}

func IsDoesNotExist(err error) bool {
	return stderrors.Is(err, ErrDoesNotExist)
}
