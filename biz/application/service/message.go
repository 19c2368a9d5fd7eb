package service

import (
	"context"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/reaction"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

type IMessageService interface {
	React(ctx context.Context, req *core_api.ReactReq) (*core_api.ReactResp, error)
	Unreact(ctx context.Context, req *core_api.UnreactReq) (*core_api.UnreactResp, error)
}

type MessageService struct {
	MessageMapper  message.MongoMapper
	ReactionMapper reaction.MongoMapper
}

var MessageServiceSet = wire.NewSet(
	wire.Struct(new(MessageService), "*"),
	wire.Bind(new(IMessageService), new(*MessageService)),
)

// React 给消息贴表情, 同一用户重复贴则覆盖
func (s *MessageService) React(ctx context.Context, req *core_api.ReactReq) (*core_api.ReactResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	if req.Emoji == "" {
		return nil, errorx.New(errno.ValidationErrCode)
	}

	if err = s.ownedMessage(ctx, uid, req.MessageId); err != nil {
		return nil, err
	}
	if _, err = s.ReactionMapper.UpsertReaction(ctx, uid, req.MessageId, req.Emoji); err != nil {
		logs.Errorf("react error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ReactionErrCode)
	}
	return &core_api.ReactResp{Resp: util.Success()}, nil
}

func (s *MessageService) Unreact(ctx context.Context, req *core_api.UnreactReq) (*core_api.UnreactResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	if err = s.ownedMessage(ctx, uid, req.MessageId); err != nil {
		return nil, err
	}
	if err = s.ReactionMapper.DeleteReaction(ctx, uid, req.MessageId); err != nil {
		logs.Errorf("unreact error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ReactionErrCode)
	}
	return &core_api.UnreactResp{Resp: util.Success()}, nil
}

func (s *MessageService) ownedMessage(ctx context.Context, uid, mid string) error {
	m, err := s.MessageMapper.FindById(ctx, mid)
	if err != nil {
		return errorx.WrapByCode(err, errno.MessageNotFoundErrCode)
	}
	if m.UserId.Hex() != uid {
		return errorx.New(errno.ForbiddenErrCode)
	}
	return nil
}
