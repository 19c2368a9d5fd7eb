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

// React 给消息添加表情回应
// @router /message/react [POST]
func React(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ReactReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().MessageService.React(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Unreact 移除表情回应
// @router /message/unreact [POST]
func Unreact(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.UnreactReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().MessageService.Unreact(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
