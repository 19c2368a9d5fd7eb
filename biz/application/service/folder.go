package service

import (
	"context"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/folder"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type IFolderService interface {
	CreateFolder(ctx context.Context, req *core_api.CreateFolderReq) (*core_api.CreateFolderResp, error)
	ListFolder(ctx context.Context, req *core_api.ListFolderReq) (*core_api.ListFolderResp, error)
	UpdateFolder(ctx context.Context, req *core_api.UpdateFolderReq) (*core_api.UpdateFolderResp, error)
	DeleteFolder(ctx context.Context, req *core_api.DeleteFolderReq) (*core_api.DeleteFolderResp, error)
}

type FolderService struct {
	FolderMapper       folder.MongoMapper
	ConversationMapper conversation.MongoMapper
}

var FolderServiceSet = wire.NewSet(
	wire.Struct(new(FolderService), "*"),
	wire.Bind(new(IFolderService), new(*FolderService)),
)

func (s *FolderService) CreateFolder(ctx context.Context, req *core_api.CreateFolderReq) (*core_api.CreateFolderResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if req.Name == "" {
		return nil, errorx.New(errno.ValidationErrCode)
	}

	f, err := s.FolderMapper.CreateFolder(ctx, uid, req.Name, req.Color)
	if err != nil {
		logs.Errorf("create folder error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.FolderCreateErrCode)
	}
	return &core_api.CreateFolderResp{Resp: util.Success(), Folder: folderToDTO(f)}, nil
}

func (s *FolderService) ListFolder(ctx context.Context, req *core_api.ListFolderReq) (*core_api.ListFolderResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	fs, err := s.FolderMapper.ListFolders(ctx, uid)
	if err != nil {
		logs.Errorf("list folder error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.FolderListErrCode)
	}
	list := make([]*core_api.Folder, 0, len(fs))
	for _, f := range fs {
		list = append(list, folderToDTO(f))
	}
	return &core_api.ListFolderResp{Resp: util.Success(), Folders: list}, nil
}

func (s *FolderService) UpdateFolder(ctx context.Context, req *core_api.UpdateFolderReq) (*core_api.UpdateFolderResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	set := bson.M{}
	if req.Name != nil {
		set[cst.Name] = *req.Name
	}
	if req.Color != nil {
		set[cst.Color] = *req.Color
	}
	if len(set) == 0 {
		return &core_api.UpdateFolderResp{Resp: util.Success()}, nil
	}
	if err = s.FolderMapper.UpdateFolder(ctx, uid, req.FolderId, set); err != nil {
		logs.Errorf("update folder error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.FolderUpdateErrCode)
	}
	return &core_api.UpdateFolderResp{Resp: util.Success()}, nil
}

// DeleteFolder 软删文件夹, 其下会话移回根
func (s *FolderService) DeleteFolder(ctx context.Context, req *core_api.DeleteFolderReq) (*core_api.DeleteFolderResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	if err = s.FolderMapper.DeleteFolder(ctx, uid, req.FolderId); err != nil {
		logs.Errorf("delete folder error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.FolderDeleteErrCode)
	}
	if err = s.ConversationMapper.ClearFolder(ctx, uid, req.FolderId); err != nil {
		logs.Errorf("clear folder error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.FolderDeleteErrCode)
	}
	return &core_api.DeleteFolderResp{Resp: util.Success()}, nil
}

func folderToDTO(f *folder.Folder) *core_api.Folder {
	return &core_api.Folder{
		FolderId:   f.FolderId.Hex(),
		Name:       f.Name,
		Color:      f.Color,
		CreateTime: f.CreateTime.UnixMilli(),
		UpdateTime: f.UpdateTime.UnixMilli(),
	}
}
