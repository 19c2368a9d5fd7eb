package service

import (
	"context"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/user"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

type IUserService interface {
	Login(ctx context.Context, req *core_api.LoginReq) (*core_api.LoginResp, error)
	GetMe(ctx context.Context, req *core_api.GetMeReq) (*core_api.GetMeResp, error)
}

type UserService struct {
	UserMapper user.MongoMapper
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// Login 外部身份验证通过后落库并换发本服务的token
func (s *UserService) Login(ctx context.Context, req *core_api.LoginReq) (*core_api.LoginResp, error) {
	if req.ExternalId == "" {
		return nil, errorx.New(errno.ValidationErrCode)
	}

	u, err := s.UserMapper.FindOrCreateUser(ctx, req.ExternalId, req.Email, req.Name, req.Avatar)
	if err != nil {
		logs.Errorf("login error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrLogin)
	}
	token, err := adaptor.SignToken(u.UserId.Hex())
	if err != nil {
		logs.Errorf("sign token error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrLogin)
	}
	return &core_api.LoginResp{Resp: util.Success(), Token: token, User: userToDTO(u)}, nil
}

func (s *UserService) GetMe(ctx context.Context, req *core_api.GetMeReq) (*core_api.GetMeResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	u, err := s.UserMapper.FindById(ctx, uid)
	if err != nil {
		logs.Errorf("get me error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrUserGet)
	}
	return &core_api.GetMeResp{Resp: util.Success(), User: userToDTO(u)}, nil
}

func userToDTO(u *user.User) *core_api.UserInfo {
	return &core_api.UserInfo{
		UserId:     u.UserId.Hex(),
		Email:      u.Email,
		Name:       u.Name,
		Avatar:     u.Avatar,
		Admin:      u.Admin,
		CreateTime: u.CreateTime.UnixMilli(),
	}
}
