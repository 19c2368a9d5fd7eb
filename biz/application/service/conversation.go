package service

import (
	"context"

	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/folder"
	mmsg "github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/reaction"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
)

type IConversationService interface {
	CreateConversation(ctx context.Context, req *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error)
	ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error)
	GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error)
	UpdateConversation(ctx context.Context, req *core_api.UpdateConversationReq) (*core_api.UpdateConversationResp, error)
	PinConversation(ctx context.Context, req *core_api.PinConversationReq) (*core_api.PinConversationResp, error)
	ArchiveConversation(ctx context.Context, req *core_api.ArchiveConversationReq) (*core_api.ArchiveConversationResp, error)
	DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error)
	SearchConversation(ctx context.Context, req *core_api.SearchConversationReq) (*core_api.SearchConversationResp, error)
}

type ConversationService struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      mmsg.MongoMapper
	FolderMapper       folder.MongoMapper
	ReactionMapper     reaction.MongoMapper
	Config             *config.Config
}

var ConversationServiceSet = wire.NewSet(
	wire.Struct(new(ConversationService), "*"),
	wire.Bind(new(IConversationService), new(*ConversationService)),
)

func (s *ConversationService) CreateConversation(ctx context.Context, req *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	// 目标文件夹必须是自己的
	if req.FolderId != "" {
		f, err := s.FolderMapper.FindById(ctx, req.FolderId)
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.FolderNotFoundErrCode)
		}
		if f.UserId.Hex() != uid {
			return nil, errorx.New(errno.ForbiddenErrCode)
		}
	}

	m := req.Model
	if m == "" {
		m = s.Config.OpenRouter.Model
	}
	newConversation, err := s.ConversationMapper.CreateNewConversation(ctx, uid, req.FolderId, m, req.SystemPrompt)
	if err != nil {
		logs.Errorf("create conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	}

	return &core_api.CreateConversationResp{Resp: util.Success(), ConversationId: newConversation.ConversationId.Hex()}, nil
}

func (s *ConversationService) ListConversation(ctx context.Context, req *core_api.ListConversationReq) (*core_api.ListConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	cs, hasMore, err := s.ConversationMapper.ListConversations(ctx, uid, req.FolderId, req.Archived, req.Page)
	if err != nil {
		logs.Errorf("list conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}

	list := make([]*core_api.Conversation, 0, len(cs))
	for _, c := range cs {
		list = append(list, conversationToDTO(c))
	}
	return &core_api.ListConversationResp{Resp: util.Success(), Conversations: list, HasMore: hasMore}, nil
}

func (s *ConversationService) GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	c, err := s.owned(ctx, uid, req.ConversationId)
	if err != nil {
		return nil, err
	}

	msgs, hasMore, err := s.MessageMapper.ListMessage(ctx, req.ConversationId, req.Page)
	if err != nil {
		logs.Errorf("get conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}

	// 聚合消息上的表情反馈
	mids := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		mids = append(mids, m.MessageId)
	}
	reactions := map[string][]string{}
	if rs, err := s.ReactionMapper.ListByMessageIds(ctx, mids); err == nil {
		for _, r := range rs {
			mid := r.MessageId.Hex()
			reactions[mid] = append(reactions[mid], r.Emoji)
		}
	}

	list := make([]*core_api.Message, 0, len(msgs))
	for _, m := range msgs {
		list = append(list, &core_api.Message{
			MessageId:      m.MessageId.Hex(),
			ConversationId: m.ConversationId.Hex(),
			Role:           mmsg.RoleItoS[m.Role],
			Content:        m.Content,
			Index:          m.Index,
			CreateTime:     m.CreateTime.UnixMilli(),
			Reactions:      reactions[m.MessageId.Hex()],
		})
	}
	var cursor string
	if len(msgs) > 0 {
		cursor = msgs[len(msgs)-1].MessageId.Hex()
	}
	return &core_api.GetConversationResp{
		Resp:         util.Success(),
		Conversation: conversationToDTO(c),
		MessageList:  list,
		HasMore:      hasMore,
		Cursor:       cursor,
	}, nil
}

func (s *ConversationService) UpdateConversation(ctx context.Context, req *core_api.UpdateConversationReq) (*core_api.UpdateConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	set := bson.M{}
	if req.Brief != nil {
		set[cst.Brief] = *req.Brief
	}
	if req.SystemPrompt != nil {
		set[cst.SystemPrompt] = *req.SystemPrompt
	}
	if req.Model != nil {
		set[cst.Model] = *req.Model
	}
	if len(set) > 0 {
		if err = s.ConversationMapper.UpdateConversation(ctx, uid, req.ConversationId, set); err != nil {
			logs.Errorf("update conversation error: %s", errorx.ErrorWithoutStack(err))
			return nil, errorx.WrapByCode(err, errno.ConversationUpdateErrCode)
		}
	}
	if req.FolderId != nil {
		if *req.FolderId != "" {
			f, err := s.FolderMapper.FindById(ctx, *req.FolderId)
			if err != nil {
				return nil, errorx.WrapByCode(err, errno.FolderNotFoundErrCode)
			}
			if f.UserId.Hex() != uid {
				return nil, errorx.New(errno.ForbiddenErrCode)
			}
		}
		if err = s.ConversationMapper.SetFolder(ctx, uid, req.ConversationId, *req.FolderId); err != nil {
			logs.Errorf("move conversation error: %s", errorx.ErrorWithoutStack(err))
			return nil, errorx.WrapByCode(err, errno.ConversationUpdateErrCode)
		}
	}
	return &core_api.UpdateConversationResp{Resp: util.Success()}, nil
}

func (s *ConversationService) PinConversation(ctx context.Context, req *core_api.PinConversationReq) (*core_api.PinConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	c, err := s.owned(ctx, uid, req.ConversationId)
	if err != nil {
		return nil, err
	}
	pinned := !c.Pinned
	if err = s.ConversationMapper.UpdateConversation(ctx, uid, req.ConversationId, bson.M{cst.Pinned: pinned}); err != nil {
		logs.Errorf("pin conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationUpdateErrCode)
	}
	return &core_api.PinConversationResp{Resp: util.Success(), Pinned: pinned}, nil
}

func (s *ConversationService) ArchiveConversation(ctx context.Context, req *core_api.ArchiveConversationReq) (*core_api.ArchiveConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	c, err := s.owned(ctx, uid, req.ConversationId)
	if err != nil {
		return nil, err
	}
	archived := !c.Archived
	if err = s.ConversationMapper.UpdateConversation(ctx, uid, req.ConversationId, bson.M{cst.Archived: archived}); err != nil {
		logs.Errorf("archive conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationUpdateErrCode)
	}
	return &core_api.ArchiveConversationResp{Resp: util.Success(), Archived: archived}, nil
}

func (s *ConversationService) DeleteConversation(ctx context.Context, req *core_api.DeleteConversationReq) (*core_api.DeleteConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	if err = s.ConversationMapper.DeleteConversation(ctx, uid, req.ConversationId); err != nil {
		logs.Errorf("delete conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationDeleteErrCode)
	}
	return &core_api.DeleteConversationResp{Resp: util.Success()}, nil
}

func (s *ConversationService) SearchConversation(ctx context.Context, req *core_api.SearchConversationReq) (*core_api.SearchConversationResp, error) {
	// 鉴权
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		logs.Errorf("extract user id error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	cs, hasMore, err := s.ConversationMapper.SearchConversations(ctx, uid, req.Key, req.Page)
	if err != nil {
		logs.Errorf("search conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationSearchErrCode)
	}

	list := make([]*core_api.Conversation, 0, len(cs))
	for _, c := range cs {
		list = append(list, conversationToDTO(c))
	}
	return &core_api.SearchConversationResp{Resp: util.Success(), Conversations: list, HasMore: hasMore}, nil
}

// owned 取会话并校验归属
func (s *ConversationService) owned(ctx context.Context, uid, cid string) (*conversation.Conversation, error) {
	c, err := s.ConversationMapper.FindById(ctx, cid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationNotFoundErrCode)
	}
	if c.UserId.Hex() != uid {
		return nil, errorx.New(errno.ForbiddenErrCode)
	}
	return c, nil
}

func conversationToDTO(c *conversation.Conversation) *core_api.Conversation {
	dto := &core_api.Conversation{
		ConversationId: c.ConversationId.Hex(),
		Brief:          c.Brief,
		Model:          c.Model,
		SystemPrompt:   c.SystemPrompt,
		Pinned:         c.Pinned,
		Archived:       c.Archived,
		CreateTime:     c.CreateTime.UnixMilli(),
		UpdateTime:     c.UpdateTime.UnixMilli(),
	}
	if !c.FolderId.IsZero() {
		dto.FolderId = c.FolderId.Hex()
	}
	return dto
}
