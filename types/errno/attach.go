package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	AttachUploadErrCode     = 70001
	AttachFormatErrCode     = 70002
	AttachNotConfigErrCode  = 70003
)

func init() {
	code.Register(
		AttachUploadErrCode,
		"خطا در آپلود فایل",
		code.WithAffectStability(false),
	)
	code.Register(
		AttachFormatErrCode,
		"فرمت فایل پشتیبانی نمی‌شود",
		code.WithAffectStability(false),
	)
	code.Register(
		AttachNotConfigErrCode,
		"سرویس ذخیره‌سازی فایل تنظیم نشده است",
		code.WithAffectStability(true),
	)
}
