package errno

import (
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
)

const (
	ConversationCreateErrCode   = 30001
	ConversationNotFoundErrCode = 30002
	ConversationListErrCode     = 30003
	ConversationGetErrCode      = 30004
	ConversationDeleteErrCode   = 30005
	ConversationSearchErrCode   = 30006
	ConversationUpdateErrCode   = 30007
)

func init() {
	code.Register(
		ConversationCreateErrCode,
		"خطا در ایجاد گفتگو",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationNotFoundErrCode,
		"گفتگو یافت نشد",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationListErrCode,
		"خطا در دریافت گفتگوها",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationGetErrCode,
		"خطا در دریافت گفتگو",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationDeleteErrCode,
		"خطا در حذف گفتگو",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationSearchErrCode,
		"خطا در جستجوی گفتگوها",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationUpdateErrCode,
		"خطا در بروزرسانی گفتگو",
		code.WithAffectStability(false),
	)
}
