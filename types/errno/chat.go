package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	ChatErrCode             = 40001
	ChatEmptyInputErrCode   = 40002
	ChatContextErrCode      = 40003
	ChatUpstreamKeyErrCode  = 40004
	ChatHistoryErrCode      = 40005
	ChatPersistErrCode      = 40006
)

func init() {
	code.Register(
		ChatErrCode,
		"خطا در پردازش درخواست. لطفاً دوباره تلاش کنید",
		code.WithAffectStability(true),
	)
	code.Register(
		ChatEmptyInputErrCode,
		"پیام یا تصویر باید ارسال شود",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatContextErrCode,
		"گفتگو بیش از حد طولانی است",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatUpstreamKeyErrCode,
		"کلید سرویس هوش مصنوعی تنظیم نشده است",
		code.WithAffectStability(true),
	)
	code.Register(
		ChatHistoryErrCode,
		"خطا در دریافت تاریخچه گفتگو",
		code.WithAffectStability(false),
	)
	code.Register(
		ChatPersistErrCode,
		"خطا در ذخیره پیام",
		code.WithAffectStability(true),
	)
}
