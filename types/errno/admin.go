package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	AdminStatsErrCode     = 80001
	ApiKeySaveErrCode     = 80002
	ApiKeyListErrCode     = 80003
	ApiKeyNotFoundErrCode = 80004
	ApiKeyDeleteErrCode   = 80005
	AdminUserErrCode      = 80006
)

func init() {
	code.Register(
		AdminStatsErrCode,
		"خطا در دریافت آمار",
		code.WithAffectStability(false),
	)
	code.Register(
		ApiKeySaveErrCode,
		"خطا در ذخیره API Key",
		code.WithAffectStability(false),
	)
	code.Register(
		ApiKeyListErrCode,
		"خطا در دریافت API Keys",
		code.WithAffectStability(false),
	)
	code.Register(
		ApiKeyNotFoundErrCode,
		"API Key یافت نشد",
		code.WithAffectStability(false),
	)
	code.Register(
		ApiKeyDeleteErrCode,
		"خطا در حذف API Key",
		code.WithAffectStability(false),
	)
	code.Register(
		AdminUserErrCode,
		"خطا در بروزرسانی کاربر",
		code.WithAffectStability(false),
	)
}
