package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/provider"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

// Chat 发起一轮对话, SSE流式响应
// @router /chat [POST]
func Chat(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ChatReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ChatService.Chat(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DemoChat 未登录体验对话
// @router /demo/chat [POST]
func DemoChat(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DemoChatReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ChatService.DemoChat(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
