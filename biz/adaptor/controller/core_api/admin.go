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

// AdminStats 站点统计
// @router /admin/stats [POST]
func AdminStats(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.AdminStatsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.Stats(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListUser 分页列出用户
// @router /admin/user/list [POST]
func ListUser(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListUserReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.ListUser(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SetAdmin 授予/撤销管理员
// @router /admin/user/set_admin [POST]
func SetAdmin(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SetAdminReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.SetAdmin(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListApiKey 列出上游密钥
// @router /admin/apikey/list [POST]
func ListApiKey(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListApiKeyReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.ListApiKey(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SaveApiKey 保存上游密钥
// @router /admin/apikey/save [POST]
func SaveApiKey(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.SaveApiKeyReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.SaveApiKey(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateApiKey 更新上游密钥
// @router /admin/apikey/update [POST]
func UpdateApiKey(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.UpdateApiKeyReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.UpdateApiKey(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteApiKey 删除上游密钥
// @router /admin/apikey/delete [POST]
func DeleteApiKey(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteApiKeyReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AdminService.DeleteApiKey(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
