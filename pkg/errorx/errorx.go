package errorx

// 业务异常
// 最佳实践:
// - service层末端用WrapByCode包装底层错误, adaptor统一转成{code,msg}响应
// - 错误码在types/errno中注册, 文案支持{key}占位符

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

// StatusError 带业务码的错误
type StatusError interface {
	error
	Code() int32
	Msg() string
}

type statusError struct {
	code  int32
	msg   string
	cause error
	stack string
}

func (e *statusError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("code=%d, msg=%s", e.code, e.msg)
	}
	return fmt.Sprintf("code=%d, msg=%s, cause=%v", e.code, e.msg, e.cause)
}

func (e *statusError) Code() int32 { return e.code }

func (e *statusError) Msg() string { return e.msg }

func (e *statusError) Unwrap() error { return e.cause }

type Option func(*statusError)

// KV 替换文案中的{key}占位符
func KV(key, value string) Option {
	return func(e *statusError) {
		e.msg = strings.ReplaceAll(e.msg, "{"+key+"}", value)
	}
}

func newStatusError(c int32, cause error, opts ...Option) *statusError {
	msg := "未知错误"
	if d, ok := code.Find(c); ok {
		msg = d.Msg
	}
	e := &statusError{code: c, msg: msg, cause: cause, stack: string(debug.Stack())}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New 按错误码构造异常
func New(c int32, opts ...Option) error {
	return newStatusError(c, nil, opts...)
}

// WrapByCode 包装底层错误, err为nil时返回nil
func WrapByCode(err error, c int32, opts ...Option) error {
	if err == nil {
		return nil
	}
	var se StatusError
	if errors.As(err, &se) && se.Code() != 0 {
		return err // 已经带码, 不重复包装
	}
	return newStatusError(c, err, opts...)
}

// ErrorWithoutStack 不带堆栈的错误描述, 用于日志
func ErrorWithoutStack(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
