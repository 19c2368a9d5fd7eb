package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/domain/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
)

// Titler 首轮对话后给会话起标题
type Titler interface {
	GenerateTitle(ctx context.Context, uid, cid, userText string)
}

var _ Titler = (*TitleDomain)(nil)

type TitleDomain struct {
	ConversationMapper conversation.MongoMapper
	Config             *config.Config
}

var TitleDomainSet = wire.NewSet(
	wire.Struct(new(TitleDomain), "*"),
	wire.Bind(new(Titler), new(*TitleDomain)),
)

// GenerateTitle 请模型起标题, 失败时回退为用户消息的前若干个字符
// 不影响本轮对话, 任何错误只记日志
func (d *TitleDomain) GenerateTitle(ctx context.Context, uid, cid, userText string) {
	title := d.generate(ctx, uid, userText)
	if title == "" {
		title = Truncate(userText, cst.TitleFallbackChars)
	}
	if title == "" {
		return
	}
	if err := d.ConversationMapper.UpdateConversationBrief(ctx, cid, title); err != nil {
		logs.CtxErrorf(ctx, "[title] update brief err: %s", errorx.ErrorWithoutStack(err))
	}
}

func (d *TitleDomain) generate(ctx context.Context, uid, userText string) string {
	m, err := model.GetModel(ctx, cst.ProviderOpenRouter, uid)
	if err != nil {
		logs.CtxWarnf(ctx, "[title] get model err: %s", errorx.ErrorWithoutStack(err))
		return ""
	}
	prompt := fmt.Sprintf(d.Config.Chat.TitleGen, userText)
	resp, err := m.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		logs.CtxWarnf(ctx, "[title] generate err: %s", errorx.ErrorWithoutStack(err))
		return ""
	}
	title := strings.Trim(strings.TrimSpace(resp.Content), "\"'“”«»")
	return Truncate(title, cst.TitleMaxChars)
}

// Truncate 按rune截断并补省略号, 避免把多字节字符切坏
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + cst.Ellipsis
}
