package core_api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/provider"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

// Upload 上传图片附件, 返回可访问URL
// @router /attach/upload [POST]
func Upload(ctx context.Context, c *app.RequestContext) {
	file, err := c.FormFile("file")
	if err != nil {
		adaptor.PostError(ctx, c, errorx.WrapByCode(err, errno.ValidationErrCode))
		return
	}
	ctx = adaptor.InjectContext(ctx, c)
	resp, err := provider.Get().AttachService.Upload(ctx, file)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
