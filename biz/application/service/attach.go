package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/storage"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

type IAttachService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*core_api.UploadResp, error)
}

type AttachService struct {
	CosInfra storage.COS
}

var AttachServiceSet = wire.NewSet(
	wire.Struct(new(AttachService), "*"),
	wire.Bind(new(IAttachService), new(*AttachService)),
)

// Upload 服务端直传对象存储, 返回永久访问url
// 只收图片, 超过体积上限直接拒绝
func (s *AttachService) Upload(ctx context.Context, file *multipart.FileHeader) (*core_api.UploadResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if s.CosInfra == nil {
		return nil, errorx.New(errno.AttachNotConfigErrCode)
	}
	if file == nil || file.Size == 0 {
		return nil, errorx.New(errno.ValidationErrCode)
	}
	if file.Size > cst.MaxUploadBytes {
		return nil, errorx.New(errno.AttachFormatErrCode)
	}
	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, errorx.New(errno.AttachFormatErrCode)
	}

	src, err := file.Open()
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.AttachUploadErrCode)
	}
	defer func() { _ = src.Close() }()

	// userID/时间戳_文件名 作为对象键
	key := fmt.Sprintf("%s/%d_%s", uid, time.Now().UnixMilli(), path.Base(file.Filename))
	if _, err = s.CosInfra.Upload(ctx, key, src, nil); err != nil {
		logs.Errorf("upload attach error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.AttachUploadErrCode)
	}

	return &core_api.UploadResp{
		Resp:     util.Success(),
		Url:      s.CosInfra.GetPermanentAccessURL(key),
		Filename: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
	}, nil
}
