package errno

import "github.com/parsa-ai/parsa-core-api/pkg/errorx/code"

const (
	ErrLogin    = 100_000_001
	ErrUserGet  = 100_000_002
	ErrUserList = 100_000_003
)

func init() {
	code.Register(
		ErrLogin,
		"خطا در ورود",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrUserGet,
		"کاربر یافت نشد",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrUserList,
		"خطا در دریافت کاربران",
		code.WithAffectStability(false),
	)
}
