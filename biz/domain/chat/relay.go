package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/wire"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/domain/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/attachment"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/pkg/ac"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/pkg/safego"
	"github.com/parsa-ai/parsa-core-api/types/errno"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelayDomain 一轮对话的中转
// 同步阶段校验归属并落用户消息, 异步阶段把上游片段转发给客户端, 自然结束才落模型消息
type RelayDomain struct {
	ConversationMapper conversation.MongoMapper
	MessageMapper      message.MongoMapper
	AttachmentMapper   attachment.MongoMapper
	Title              Titler
	Config             *config.Config
	Locks              *ConversationLocks
}

var RelayDomainSet = wire.NewSet(
	NewConversationLocks,
	wire.Struct(new(RelayDomain), "*"),
)

// RelayInfo 一轮对话在同步和异步阶段之间传递的状态
type RelayInfo struct {
	UserId       primitive.ObjectID
	Conversation *conversation.Conversation
	UserMsg      *message.Message
	UserText     string
	ModelName    string
	SSE          *adaptor.SSEStream
}

// Relay 同步阶段
// 输入校验 -> 会话归属 -> 会话上锁 -> 读历史 -> 落用户消息 -> 组上下文 -> 发起上游流
// 返回的事件流交给adaptor输出, 转发在goroutine中继续
func (d *RelayDomain) Relay(ctx context.Context, uid string, req *core_api.ChatReq) (*adaptor.SSEStream, error) {
	ouid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}

	text := SanitizeContent(req.Message)
	if text == "" && req.ImageUrl == "" {
		return nil, errorx.New(errno.ChatEmptyInputErrCode)
	}
	if len([]rune(text)) > cst.MaxMessageChars {
		return nil, errorx.New(errno.ValidationErrCode)
	}
	if words := d.Config.Chat.SensitiveWords; len(words) > 0 {
		text = ac.AcMask(text, words)
	}

	c, err := d.conversation(ctx, uid, req)
	if err != nil {
		return nil, err
	}
	cid := c.ConversationId.Hex()

	// 本轮对话持有会话锁, 异步阶段结束时释放
	d.Locks.Lock(cid)
	started := false
	defer func() {
		if !started {
			d.Locks.Unlock(cid)
		}
	}()

	history, err := d.MessageMapper.RetrieveMessages(ctx, cid, 0)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ChatHistoryErrCode)
	}

	sys := c.SystemPrompt
	if sys == "" {
		sys = d.Config.Chat.SystemPrompt
	}
	msgs, err := BuildContext(sys, history, text)
	if err != nil {
		return nil, err
	}

	// 先落用户消息, 即使上游失败这轮提问也不丢
	now := time.Now()
	um := &message.Message{
		MessageId:      primitive.NewObjectID(),
		ConversationId: c.ConversationId,
		UserId:         ouid,
		Index:          int32(len(history)),
		Content:        text,
		Role:           message.RoleStoI[cst.User],
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err = d.MessageMapper.InsertOne(ctx, um); err != nil {
		return nil, errorx.WrapByCode(err, errno.ChatPersistErrCode)
	}
	d.saveAttachment(ctx, um, req.ImageUrl)
	if err = d.ConversationMapper.Touch(ctx, cid); err != nil {
		logs.CtxWarnf(ctx, "[relay] touch conversation err: %s", errorx.ErrorWithoutStack(err))
	}

	name := req.Model
	if name == "" {
		name = c.Model
	}
	m, err := model.GetModel(ctx, name, uid)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithCancel(ctx)
	reader, err := m.Stream(sctx, msgs)
	if err != nil {
		cancel()
		// 用户消息已落库, 握手失败也走事件流下发终止事件
		logs.CtxErrorf(ctx, "[relay] upstream handshake err: %s", errorx.ErrorWithoutStack(err))
		s := adaptor.NewSSEStream()
		s.Send(adaptor.ErrEvent(UserFacing(errorx.WrapByCode(err, errno.ChatErrCode))))
		s.Close()
		return s, nil
	}

	info := &RelayInfo{
		UserId:       ouid,
		Conversation: c,
		UserMsg:      um,
		UserText:     text,
		ModelName:    name,
		SSE:          adaptor.NewSSEStream(),
	}
	safego.Go(sctx, func() { d.doRelay(sctx, cancel, reader, info) })
	started = true
	return info.SSE, nil
}

// conversation 定位或新建会话, 他人的会话直接拒绝
func (d *RelayDomain) conversation(ctx context.Context, uid string, req *core_api.ChatReq) (*conversation.Conversation, error) {
	if req.ConversationId == "" {
		m := req.Model
		if m == "" {
			m = d.Config.OpenRouter.Model
		}
		c, err := d.ConversationMapper.CreateNewConversation(ctx, uid, "", m, "")
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
		}
		return c, nil
	}
	c, err := d.ConversationMapper.FindById(ctx, req.ConversationId)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationNotFoundErrCode)
	}
	if c.UserId.Hex() != uid {
		return nil, errorx.New(errno.ForbiddenErrCode)
	}
	return c, nil
}

// saveAttachment 附件落库失败不阻塞本轮对话
func (d *RelayDomain) saveAttachment(ctx context.Context, um *message.Message, imageUrl string) {
	if imageUrl == "" {
		return
	}
	a := &attachment.Attachment{
		MessageId: um.MessageId,
		UserId:    um.UserId,
		Type:      cst.AttachmentTypeImage,
		Url:       imageUrl,
	}
	if err := d.AttachmentMapper.InsertOne(ctx, a); err != nil {
		logs.CtxWarnf(ctx, "[relay] save attachment err: %s", errorx.ErrorWithoutStack(err))
	}
}

// doRelay 异步阶段
// 逐片转发上游内容, EOF视为自然结束并落库, 客户端断开则中断上游且本轮模型回复作废
func (d *RelayDomain) doRelay(ctx context.Context, cancel context.CancelFunc, reader *schema.StreamReader[*schema.Message], info *RelayInfo) {
	cid := info.Conversation.ConversationId.Hex()
	s := info.SSE
	defer d.Locks.Unlock(cid)
	defer s.Close()
	defer reader.Close()
	defer cancel()

	var sb strings.Builder
	for {
		select {
		case <-s.Done: // 客户端断开
			cancel()
			logs.CtxInfof(ctx, "[relay] client gone, drop assistant turn, conversation=%s", cid)
			return
		default:
			msg, err := reader.Recv()
			if err != nil {
				if errors.Is(err, io.EOF) {
					d.finalize(ctx, info, sb.String())
				} else {
					logs.CtxErrorf(ctx, "[relay] upstream err: %s", errorx.ErrorWithoutStack(err))
					s.Send(adaptor.ErrEvent(UserFacing(err)))
				}
				return
			}
			if msg.Content == "" {
				continue
			}
			sb.WriteString(msg.Content)
			if !s.Send(adaptor.ChatEvent(msg.Content)) {
				cancel()
				return
			}
		}
	}
}

// finalize 自然结束: 落模型消息, 下发结束事件, 视情况触发标题生成
// 这里用不随请求取消的ctx, 避免客户端在最后一刻断开导致半途而废
func (d *RelayDomain) finalize(ctx context.Context, info *RelayInfo, content string) {
	s, c := info.SSE, info.Conversation
	cid := c.ConversationId.Hex()
	pctx := context.WithoutCancel(ctx)

	if SanitizeContent(content) == "" { // 上游没给任何内容
		s.Send(adaptor.ErrEvent(UserFacing(errorx.New(errno.ChatErrCode))))
		return
	}

	now := time.Now()
	am := &message.Message{
		MessageId:      primitive.NewObjectID(),
		ConversationId: c.ConversationId,
		UserId:         info.UserId,
		Index:          info.UserMsg.Index + 1,
		Content:        content,
		Model:          info.ModelName,
		Role:           message.RoleStoI[cst.Assistant],
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := d.MessageMapper.InsertOne(pctx, am); err != nil {
		logs.CtxErrorf(ctx, "[relay] persist assistant turn err: %s", errorx.ErrorWithoutStack(err))
		s.Send(adaptor.ErrEvent(UserFacing(errorx.New(errno.ChatPersistErrCode))))
		return
	}
	if err := d.ConversationMapper.Touch(pctx, cid); err != nil {
		logs.CtxWarnf(ctx, "[relay] touch conversation err: %s", errorx.ErrorWithoutStack(err))
	}
	s.Send(adaptor.EndEvent(am.MessageId.Hex()))
	d.maybeTitle(pctx, info)
}

// maybeTitle 首轮对话结束且标题未被自定义时, 异步生成标题
func (d *RelayDomain) maybeTitle(ctx context.Context, info *RelayInfo) {
	if info.Conversation.Brief != cst.DefaultBrief {
		return
	}
	cid := info.Conversation.ConversationId.Hex()
	total, err := d.MessageMapper.CountMessage(ctx, cid)
	if err != nil || total > cst.TitleTriggerCount {
		return
	}
	uid := info.UserId.Hex()
	text := info.UserText
	safego.Go(ctx, func() { d.Title.GenerateTitle(ctx, uid, cid, text) })
}

// UserFacing 给客户端看的错误文案, 非业务错误一律回落到通用文案
func UserFacing(err error) string {
	var se errorx.StatusError
	if errors.As(err, &se) {
		return se.Msg()
	}
	if def, ok := code.Find(errno.ChatErrCode); ok {
		return def.Msg
	}
	return "error"
}
