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

// CreateConversation 创建会话
// @router /conversation/create [POST]
func CreateConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.CreateConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListConversation 分页列出会话
// @router /conversation/list [POST]
func ListConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.ListConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetConversation 获取会话详情及消息
// @router /conversation/get [POST]
func GetConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.GetConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateConversation 更新会话属性
// @router /conversation/update [POST]
func UpdateConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.UpdateConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.UpdateConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PinConversation 置顶/取消置顶
// @router /conversation/pin [POST]
func PinConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.PinConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.PinConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ArchiveConversation 归档/取消归档
// @router /conversation/archive [POST]
func ArchiveConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ArchiveConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.ArchiveConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteConversation 删除会话
// @router /conversation/delete [POST]
func DeleteConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.DeleteConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SearchConversation 按标题搜索会话
// @router /conversation/search [POST]
func SearchConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SearchConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().ConversationService.SearchConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
