package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	FolderCreateErrCode   = 50001
	FolderNotFoundErrCode = 50002
	FolderListErrCode     = 50003
	FolderUpdateErrCode   = 50004
	FolderDeleteErrCode   = 50005
)

func init() {
	code.Register(
		FolderCreateErrCode,
		"خطا در ایجاد پوشه",
		code.WithAffectStability(false),
	)
	code.Register(
		FolderNotFoundErrCode,
		"پوشه یافت نشد",
		code.WithAffectStability(false),
	)
	code.Register(
		FolderListErrCode,
		"خطا در دریافت پوشه‌ها",
		code.WithAffectStability(false),
	)
	code.Register(
		FolderUpdateErrCode,
		"خطا در بروزرسانی پوشه",
		code.WithAffectStability(false),
	)
	code.Register(
		FolderDeleteErrCode,
		"خطا در حذف پوشه",
		code.WithAffectStability(false),
	)
}
