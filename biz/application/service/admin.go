package service

import (
	"context"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/apikey"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	mmsg "github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/user"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type IAdminService interface {
	Stats(ctx context.Context, req *core_api.AdminStatsReq) (*core_api.AdminStatsResp, error)
	ListUser(ctx context.Context, req *core_api.ListUserReq) (*core_api.ListUserResp, error)
	SetAdmin(ctx context.Context, req *core_api.SetAdminReq) (*core_api.SetAdminResp, error)
	ListApiKey(ctx context.Context, req *core_api.ListApiKeyReq) (*core_api.ListApiKeyResp, error)
	SaveApiKey(ctx context.Context, req *core_api.SaveApiKeyReq) (*core_api.SaveApiKeyResp, error)
	UpdateApiKey(ctx context.Context, req *core_api.UpdateApiKeyReq) (*core_api.UpdateApiKeyResp, error)
	DeleteApiKey(ctx context.Context, req *core_api.DeleteApiKeyReq) (*core_api.DeleteApiKeyResp, error)
}

type AdminService struct {
	UserMapper         user.MongoMapper
	ConversationMapper conversation.MongoMapper
	MessageMapper      mmsg.MongoMapper
	ApiKeyMapper       apikey.MongoMapper
}

var AdminServiceSet = wire.NewSet(
	wire.Struct(new(AdminService), "*"),
	wire.Bind(new(IAdminService), new(*AdminService)),
)

// requireAdmin 鉴权并要求管理员
func (s *AdminService) requireAdmin(ctx context.Context) (string, error) {
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return "", errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	u, err := s.UserMapper.FindById(ctx, uid)
	if err != nil {
		return "", errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if !u.Admin {
		return "", errorx.New(errno.ForbiddenErrCode)
	}
	return uid, nil
}

func (s *AdminService) Stats(ctx context.Context, req *core_api.AdminStatsReq) (*core_api.AdminStatsResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.UserMapper.CountUser(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.AdminStatsErrCode)
	}
	admins, err := s.UserMapper.CountAdmins(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.AdminStatsErrCode)
	}
	conversations, err := s.ConversationMapper.CountAll(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.AdminStatsErrCode)
	}
	messages, err := s.MessageMapper.CountAll(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.AdminStatsErrCode)
	}
	return &core_api.AdminStatsResp{
		Resp:               util.Success(),
		TotalUsers:         users,
		TotalConversations: conversations,
		TotalMessages:      messages,
		AdminUsers:         admins,
	}, nil
}

func (s *AdminService) ListUser(ctx context.Context, req *core_api.ListUserReq) (*core_api.ListUserResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	total, users, err := s.UserMapper.ListUser(ctx, req.Page)
	if err != nil {
		logs.Errorf("list user error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrUserList)
	}
	list := make([]*core_api.UserInfo, 0, len(users))
	for _, u := range users {
		list = append(list, userToDTO(u))
	}
	return &core_api.ListUserResp{Resp: util.Success(), Users: list, HasMore: util.HasMore(total, req.Page)}, nil
}

// SetAdmin 授予或回收管理员, 不允许回收自己
func (s *AdminService) SetAdmin(ctx context.Context, req *core_api.SetAdminReq) (*core_api.SetAdminResp, error) {
	uid, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserId == uid && !req.Admin {
		return nil, errorx.New(errno.ValidationErrCode)
	}

	u, err := s.UserMapper.SetAdmin(ctx, req.UserId, req.Admin)
	if err != nil {
		logs.Errorf("set admin error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.AdminUserErrCode)
	}
	return &core_api.SetAdminResp{Resp: util.Success(), User: userToDTO(u)}, nil
}

func (s *AdminService) ListApiKey(ctx context.Context, req *core_api.ListApiKeyReq) (*core_api.ListApiKeyResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	ks, err := s.ApiKeyMapper.ListAll(ctx)
	if err != nil {
		logs.Errorf("list api key error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ApiKeyListErrCode)
	}
	list := make([]*core_api.ApiKeyItem, 0, len(ks))
	for _, k := range ks {
		list = append(list, apiKeyToDTO(k))
	}
	return &core_api.ListApiKeyResp{Resp: util.Success(), ApiKeys: list}, nil
}

func (s *AdminService) SaveApiKey(ctx context.Context, req *core_api.SaveApiKeyReq) (*core_api.SaveApiKeyResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if req.Key == "" {
		return nil, errorx.New(errno.ValidationErrCode)
	}
	provider := req.Provider
	if provider == "" {
		provider = cst.ProviderOpenRouter
	}

	k, err := s.ApiKeyMapper.UpsertByProvider(ctx, provider, req.Key)
	if err != nil {
		logs.Errorf("save api key error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ApiKeySaveErrCode)
	}
	return &core_api.SaveApiKeyResp{Resp: util.Success(), ApiKey: apiKeyToDTO(k)}, nil
}

func (s *AdminService) UpdateApiKey(ctx context.Context, req *core_api.UpdateApiKeyReq) (*core_api.UpdateApiKeyResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Key != nil && *req.Key != "" {
		set[cst.Key] = *req.Key
	}
	if req.Active != nil {
		set[cst.Active] = *req.Active
	}
	if len(set) == 0 {
		return nil, errorx.New(errno.ValidationErrCode)
	}
	if err := s.ApiKeyMapper.UpdateById(ctx, req.Id, set); err != nil {
		logs.Errorf("update api key error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ApiKeyNotFoundErrCode)
	}
	return &core_api.UpdateApiKeyResp{Resp: util.Success()}, nil
}

func (s *AdminService) DeleteApiKey(ctx context.Context, req *core_api.DeleteApiKeyReq) (*core_api.DeleteApiKeyResp, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.ApiKeyMapper.DeleteById(ctx, req.Id); err != nil {
		logs.Errorf("delete api key error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ApiKeyDeleteErrCode)
	}
	return &core_api.DeleteApiKeyResp{Resp: util.Success()}, nil
}

func apiKeyToDTO(k *apikey.ApiKey) *core_api.ApiKeyItem {
	return &core_api.ApiKeyItem{
		Id:         k.KeyId.Hex(),
		Provider:   k.Provider,
		Key:        util.Mask(k.Key),
		Active:     k.Active,
		CreateTime: k.CreateTime.UnixMilli(),
		UpdateTime: k.UpdateTime.UnixMilli(),
	}
}
