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

// CreateFolder 创建文件夹
// @router /folder/create [POST]
func CreateFolder(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateFolderReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().FolderService.CreateFolder(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListFolder 列出文件夹
// @router /folder/list [POST]
func ListFolder(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListFolderReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().FolderService.ListFolder(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateFolder 重命名文件夹
// @router /folder/update [POST]
func UpdateFolder(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.UpdateFolderReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().FolderService.UpdateFolder(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteFolder 删除文件夹, 其中会话移回根目录
// @router /folder/delete [POST]
func DeleteFolder(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.DeleteFolderReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().FolderService.DeleteFolder(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
