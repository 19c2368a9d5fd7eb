package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	UnAuthErrCode      = 1000
	ValidationErrCode  = 1001
	ForbiddenErrCode   = 1002
	UnImplementErrCode = 888
	OIDErrCode         = 777
)

func init() {
	code.Register(
		UnAuthErrCode,
		"لطفاً ابتدا وارد شوید",
		code.WithAffectStability(false),
	)
	code.Register(
		ValidationErrCode,
		"درخواست نامعتبر است",
		code.WithAffectStability(false),
	)
	code.Register(
		ForbiddenErrCode,
		"شما دسترسی لازم را ندارید",
		code.WithAffectStability(false),
	)
	code.Register(
		UnImplementErrCode,
		"این قابلیت هنوز پیاده‌سازی نشده است",
		code.WithAffectStability(true),
	)
	code.Register(
		OIDErrCode,
		"شناسه نامعتبر است",
		code.WithAffectStability(false),
	)
}
