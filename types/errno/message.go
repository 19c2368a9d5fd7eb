package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	ReactionErrCode        = 60001
	MessageNotFoundErrCode = 60002
)

func init() {
	code.Register(
		ReactionErrCode,
		"خطا در ثبت واکنش",
		code.WithAffectStability(false),
	)
	code.Register(
		MessageNotFoundErrCode,
		"پیام یافت نشد",
		code.WithAffectStability(false),
	)
}
