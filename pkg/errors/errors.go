package errors

import "errors"

// Kind 稳定的机器可读错误类别，随响应体一同返回给客户端
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindAuth            Kind = "auth"
	KindExpired         Kind = "expired"
	KindPendingApproval Kind = "pending_approval"
	KindInternal        Kind = "internal"
)

// AppError 业务错误：类别 + 数字错误码 + 面向用户的提示
type AppError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// New 创建业务错误（作为包级哨兵变量使用，调用方以 errors.Is 比较）
func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// As 从错误链中提取 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
