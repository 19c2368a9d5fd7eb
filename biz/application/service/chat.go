package service

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/domain/chat"
	"github.com/parsa-ai/parsa-core-api/biz/domain/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/pkg/safego"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

type IChatService interface {
	Chat(ctx context.Context, req *core_api.ChatReq) (*adaptor.SSEStream, error)
	DemoChat(ctx context.Context, req *core_api.DemoChatReq) (*adaptor.SSEStream, error)
}

type ChatService struct {
	Relay  *chat.RelayDomain
	Config *config.Config
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

// Chat 发起一轮对话, 响应为SSE事件流
func (s *ChatService) Chat(ctx context.Context, req *core_api.ChatReq) (*adaptor.SSEStream, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return s.Relay.Relay(ctx, uid, req)
}

// DemoChat 未登录体验对话, 不落库
// 上游一次性生成, 再按既有事件格式下发, 前端无需区分两种对话
func (s *ChatService) DemoChat(ctx context.Context, req *core_api.DemoChatReq) (*adaptor.SSEStream, error) {
	text := chat.SanitizeContent(req.Message)
	if text == "" {
		return nil, errorx.New(errno.ChatEmptyInputErrCode)
	}
	if len([]rune(text)) > cst.MaxMessageChars {
		return nil, errorx.New(errno.ValidationErrCode)
	}

	m, err := model.GetModel(ctx, cst.ProviderOpenRouter, "")
	if err != nil {
		return nil, err
	}
	msgs := []*schema.Message{
		schema.SystemMessage(s.Config.Chat.SystemPrompt),
		schema.UserMessage(text),
	}

	stream := adaptor.NewSSEStream()
	safego.Go(ctx, func() {
		defer stream.Close()
		out, err := m.Generate(ctx, msgs)
		if err != nil {
			logs.CtxErrorf(ctx, "demo chat err: %s", errorx.ErrorWithoutStack(err))
			stream.Send(adaptor.ErrEvent(chat.UserFacing(err)))
			return
		}
		if stream.Send(adaptor.ChatEvent(out.Content)) {
			stream.Send(adaptor.EndEvent(""))
		}
	})
	return stream, nil
}
