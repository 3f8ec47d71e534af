package common

import (
	"errors"
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// mining error code: [600000, 700000)
	ErrInvalidParameter = &ServiceError{600001, "invalid parameter"}
	ErrValidation       = &ServiceError{600002, "invalid transaction"}
	ErrInternal         = &ServiceError{600003, "internal invariant violated"}
)

// InvalidParameterError 阈值参数不合法, 在任何计算开始之前返回
type InvalidParameterError struct {
	Name  string
	Value float64
	Want  string
}

func NewInvalidParameter(name string, value float64, want string) *InvalidParameterError {
	return &InvalidParameterError{Name: name, Value: value, Want: want}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v, want %s", ErrInvalidParameter.Msg, e.Name, e.Value, e.Want)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// ValidationError 单条事务不合法, 该事务被丢弃但不影响整体运行
type ValidationError struct {
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: row %d: %s", ErrValidation.Msg, e.Row, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InternalError FP树等结构的不变量被破坏, 属于程序逻辑错误, 只能panic
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInternal.Msg, e.Msg)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// Fatalf 以InternalError触发panic
func Fatalf(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

// IsInternal 判断recover得到的值是否为InternalError
func IsInternal(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, ErrInternal)
}
