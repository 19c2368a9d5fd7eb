package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/adaptor"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"
	"github.com/parsa-ai/parsa-core-api/biz/application/dto/core_api"
	"github.com/parsa-ai/parsa-core-api/biz/domain/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/attachment"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/conversation"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/types/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ---- fakes ----

type fakeConversationMapper struct {
	mu      sync.Mutex
	convs   map[string]*conversation.Conversation
	briefs  map[string]string
	touched int
}

func newFakeConversationMapper() *fakeConversationMapper {
	return &fakeConversationMapper{convs: map[string]*conversation.Conversation{}, briefs: map[string]string{}}
}

func (f *fakeConversationMapper) put(c *conversation.Conversation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convs[c.ConversationId.Hex()] = c
}

func (f *fakeConversationMapper) CreateNewConversation(ctx context.Context, uid, folderId, m, systemPrompt string) (*conversation.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, err
	}
	c := &conversation.Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         oid,
		Brief:          cst.DefaultBrief,
		Model:          m,
		SystemPrompt:   systemPrompt,
	}
	f.put(c)
	return c, nil
}

func (f *fakeConversationMapper) FindById(ctx context.Context, cid string) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[cid]
	if !ok {
		return nil, errors.New("no documents")
	}
	return c, nil
}

func (f *fakeConversationMapper) ListConversations(ctx context.Context, uid string, folderId *string, archived bool, page *basic.Page) ([]*conversation.Conversation, bool, error) {
	return nil, false, nil
}

func (f *fakeConversationMapper) SearchConversations(ctx context.Context, uid, key string, page *basic.Page) ([]*conversation.Conversation, bool, error) {
	return nil, false, nil
}

func (f *fakeConversationMapper) UpdateConversation(ctx context.Context, uid, cid string, set bson.M) error {
	return nil
}

func (f *fakeConversationMapper) SetFolder(ctx context.Context, uid, cid, folderId string) error {
	return nil
}

func (f *fakeConversationMapper) UpdateConversationBrief(ctx context.Context, cid, brief string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.briefs[cid] = brief
	return nil
}

func (f *fakeConversationMapper) Touch(ctx context.Context, cid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched++
	return nil
}

func (f *fakeConversationMapper) DeleteConversation(ctx context.Context, uid, cid string) error {
	return nil
}

func (f *fakeConversationMapper) ClearFolder(ctx context.Context, uid, folderId string) error {
	return nil
}

func (f *fakeConversationMapper) CountAll(ctx context.Context) (int64, error) { return 0, nil }

type fakeMessageMapper struct {
	mu        sync.Mutex
	msgs      []*message.Message
	insertErr error
}

func (f *fakeMessageMapper) all() []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.msgs))
	copy(out, f.msgs)
	return out
}

func (f *fakeMessageMapper) RetrieveMessages(ctx context.Context, conversation string, size int) ([]*message.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*message.Message
	for _, m := range f.msgs {
		if m.ConversationId.Hex() == conversation {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageMapper) InsertOne(ctx context.Context, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeMessageMapper) ListMessage(ctx context.Context, conversation string, page *basic.Page) ([]*message.Message, bool, error) {
	return nil, false, nil
}

func (f *fakeMessageMapper) FindById(ctx context.Context, mid string) (*message.Message, error) {
	return nil, errors.New("no documents")
}

func (f *fakeMessageMapper) CountMessage(ctx context.Context, conversation string) (int64, error) {
	msgs, _ := f.RetrieveMessages(ctx, conversation, 0)
	return int64(len(msgs)), nil
}

func (f *fakeMessageMapper) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.all())), nil
}

type fakeAttachmentMapper struct {
	mu  sync.Mutex
	as  []*attachment.Attachment
	err error
}

func (f *fakeAttachmentMapper) InsertOne(ctx context.Context, a *attachment.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.as = append(f.as, a)
	return nil
}

func (f *fakeAttachmentMapper) ListByMessage(ctx context.Context, mid string) ([]*attachment.Attachment, error) {
	return nil, nil
}

type fakeTitler struct {
	called chan string
}

func (f *fakeTitler) GenerateTitle(ctx context.Context, uid, cid, userText string) {
	select {
	case f.called <- userText:
	default:
	}
}

// scriptModel 按脚本下发片段, block为真时片段发完后挂起直到ctx取消
type scriptModel struct {
	chunks []string
	err    error
	block  bool
}

func (m *scriptModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	return &schema.Message{Role: schema.Assistant, Content: "generated"}, nil
}

func (m *scriptModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](5)
	go func() {
		defer sw.Close()
		for _, c := range m.chunks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if sw.Send(&schema.Message{Role: schema.Assistant, Content: c}, nil) {
				return
			}
		}
		if m.err != nil {
			sw.Send(nil, m.err)
			return
		}
		if m.block {
			<-ctx.Done()
		}
	}()
	return sr, nil
}

// handshakeErrModel Stream在握手阶段直接失败, 比如上游返回401
type handshakeErrModel struct{}

func (m *handshakeErrModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	return nil, errors.New("401 unauthorized")
}

func (m *handshakeErrModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("401 unauthorized")
}

// endlessModel 无限下发片段直到ctx取消, 用来模拟客户端中途断开的场景
type endlessModel struct{}

func (m *endlessModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	return nil, errors.New("stream only")
}

func (m *endlessModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](5)
	go func() {
		defer sw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if sw.Send(&schema.Message{Role: schema.Assistant, Content: "x"}, nil) {
				return
			}
		}
	}()
	return sr, nil
}

// ---- helpers ----

type sseEvent struct {
	Content   string `json:"content"`
	Done      bool   `json:"done"`
	MessageId string `json:"messageId"`
	Error     string `json:"error"`
}

func drain(t *testing.T, s *adaptor.SSEStream) []sseEvent {
	t.Helper()
	var events []sseEvent
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-s.C:
			if !ok {
				return events
			}
			var p sseEvent
			require.NoError(t, sonic.Unmarshal(e.Data, &p))
			events = append(events, p)
		case <-deadline:
			t.Fatal("stream did not close in time")
		}
	}
}

func newRelayDomain(fc *fakeConversationMapper, fm *fakeMessageMapper, fa *fakeAttachmentMapper, ft *fakeTitler) *RelayDomain {
	cfg := &config.Config{}
	cfg.Chat.SystemPrompt = "دستیار باش"
	cfg.OpenRouter.Model = "script"
	return &RelayDomain{
		ConversationMapper: fc,
		MessageMapper:      fm,
		AttachmentMapper:   fa,
		Title:              ft,
		Config:             cfg,
		Locks:              NewConversationLocks(),
	}
}

func existingConversation(fc *fakeConversationMapper, uid string) *conversation.Conversation {
	oid, _ := primitive.ObjectIDFromHex(uid)
	c := &conversation.Conversation{
		ConversationId: primitive.NewObjectID(),
		UserId:         oid,
		Brief:          cst.DefaultBrief,
		Model:          "script",
	}
	fc.put(c)
	return c
}

// ---- tests ----

func TestRelayNaturalCompletion(t *testing.T) {
	model.RegisterModel("script", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &scriptModel{chunks: []string{"سلام", " دنیا"}}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	ft := &fakeTitler{called: make(chan string, 1)}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, ft)
	c := existingConversation(fc, uid)

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{ConversationId: c.ConversationId.Hex(), Message: "سوال", Model: "script"})
	require.NoError(t, err)

	events := drain(t, s)
	require.Len(t, events, 3)
	assert.Equal(t, "سلام", events[0].Content)
	assert.Equal(t, " دنیا", events[1].Content)
	assert.True(t, events[2].Done)
	assert.NotEmpty(t, events[2].MessageId)
	assert.Empty(t, events[2].Error)

	msgs := fm.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, int32(0), msgs[0].Index)
	assert.Equal(t, message.RoleStoI[cst.User], msgs[0].Role)
	assert.Equal(t, "سوال", msgs[0].Content)
	assert.Equal(t, int32(1), msgs[1].Index)
	assert.Equal(t, message.RoleStoI[cst.Assistant], msgs[1].Role)
	assert.Equal(t, "سلام دنیا", msgs[1].Content)
	assert.Equal(t, "script", msgs[1].Model)
	assert.Equal(t, events[2].MessageId, msgs[1].MessageId.Hex())

	// 首轮结束且标题未自定义, 应触发标题生成
	select {
	case text := <-ft.called:
		assert.Equal(t, "سوال", text)
	case <-time.After(5 * time.Second):
		t.Fatal("title generation not triggered")
	}
}

func TestRelayCreatesConversation(t *testing.T) {
	model.RegisterModel("script", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &scriptModel{chunks: []string{"ok"}}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, &fakeTitler{called: make(chan string, 1)})

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{Message: "hi", Model: "script"})
	require.NoError(t, err)
	drain(t, s)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	assert.Len(t, fc.convs, 1)
}

func TestRelayClientGone(t *testing.T) {
	model.RegisterModel("endless", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &endlessModel{}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	ft := &fakeTitler{called: make(chan string, 1)}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, ft)
	c := existingConversation(fc, uid)

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{ConversationId: c.ConversationId.Hex(), Message: "hi", Model: "endless"})
	require.NoError(t, err)

	s.Abort() // 客户端断开
	deadline := time.After(5 * time.Second)
	for {
		var ok bool
		select {
		case _, ok = <-s.C:
		case <-deadline:
			t.Fatal("relay did not stop after client disconnect")
		}
		if !ok {
			break
		}
	}

	// 断开后本轮模型回复作废, 只留用户消息
	msgs := fm.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, message.RoleStoI[cst.User], msgs[0].Role)
	select {
	case <-ft.called:
		t.Fatal("title generation should not run for a dropped turn")
	default:
	}
}

func TestRelayUpstreamError(t *testing.T) {
	model.RegisterModel("script", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &scriptModel{chunks: []string{"جزئی"}, err: errors.New("upstream boom")}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, &fakeTitler{called: make(chan string, 1)})
	c := existingConversation(fc, uid)

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{ConversationId: c.ConversationId.Hex(), Message: "hi", Model: "script"})
	require.NoError(t, err)

	events := drain(t, s)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, last.Done)
	assert.NotEmpty(t, last.Error)

	// 出错的回合不落模型消息
	require.Len(t, fm.all(), 1)
}

func TestRelayHandshakeFailure(t *testing.T) {
	model.RegisterModel("handshake", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &handshakeErrModel{}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	ft := &fakeTitler{called: make(chan string, 1)}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, ft)
	c := existingConversation(fc, uid)
	cid := c.ConversationId.Hex()

	// 握手失败也走事件流, 而不是普通的错误响应
	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{ConversationId: cid, Message: "hi", Model: "handshake"})
	require.NoError(t, err)
	require.NotNil(t, s)

	events := drain(t, s)
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	assert.NotEmpty(t, events[0].Error)
	assert.NotContains(t, events[0].Error, "401") // 内部细节不透给客户端

	// 用户消息已落库, 模型消息没有
	msgs := fm.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, message.RoleStoI[cst.User], msgs[0].Role)
	select {
	case <-ft.called:
		t.Fatal("title generation should not run for a failed handshake")
	default:
	}

	// 会话锁应已释放
	relocked := make(chan struct{})
	go func() {
		d.Locks.Lock(cid)
		d.Locks.Unlock(cid)
		close(relocked)
	}()
	select {
	case <-relocked:
	case <-time.After(5 * time.Second):
		t.Fatal("conversation lock not released after handshake failure")
	}
}

func TestRelayEmptyUpstreamContent(t *testing.T) {
	model.RegisterModel("script", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &scriptModel{}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm := newFakeConversationMapper(), &fakeMessageMapper{}
	d := newRelayDomain(fc, fm, &fakeAttachmentMapper{}, &fakeTitler{called: make(chan string, 1)})
	c := existingConversation(fc, uid)

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{ConversationId: c.ConversationId.Hex(), Message: "hi", Model: "script"})
	require.NoError(t, err)

	events := drain(t, s)
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	assert.NotEmpty(t, events[0].Error)
	require.Len(t, fm.all(), 1)
}

func TestRelayRejectsEmptyInput(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	d := newRelayDomain(newFakeConversationMapper(), &fakeMessageMapper{}, &fakeAttachmentMapper{}, &fakeTitler{})

	_, err := d.Relay(context.Background(), uid, &core_api.ChatReq{Message: " \x00 \n "})
	require.Error(t, err)
	var se errorx.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int32(errno.ChatEmptyInputErrCode), se.Code())
}

func TestRelayRejectsForeignConversation(t *testing.T) {
	fc := newFakeConversationMapper()
	d := newRelayDomain(fc, &fakeMessageMapper{}, &fakeAttachmentMapper{}, &fakeTitler{})
	owner := primitive.NewObjectID().Hex()
	c := existingConversation(fc, owner)

	intruder := primitive.NewObjectID().Hex()
	_, err := d.Relay(context.Background(), intruder, &core_api.ChatReq{ConversationId: c.ConversationId.Hex(), Message: "hi"})
	require.Error(t, err)
	var se errorx.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int32(errno.ForbiddenErrCode), se.Code())
}

func TestRelaySavesAttachment(t *testing.T) {
	model.RegisterModel("script", func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		return &scriptModel{chunks: []string{"ok"}}, nil
	})
	uid := primitive.NewObjectID().Hex()
	fc, fm, fa := newFakeConversationMapper(), &fakeMessageMapper{}, &fakeAttachmentMapper{}
	d := newRelayDomain(fc, fm, fa, &fakeTitler{called: make(chan string, 1)})
	c := existingConversation(fc, uid)

	s, err := d.Relay(context.Background(), uid, &core_api.ChatReq{
		ConversationId: c.ConversationId.Hex(),
		Message:        "ببین",
		ImageUrl:       "https://cdn.example.com/a.png",
		Model:          "script",
	})
	require.NoError(t, err)
	drain(t, s)

	fa.mu.Lock()
	defer fa.mu.Unlock()
	require.Len(t, fa.as, 1)
	assert.Equal(t, cst.AttachmentTypeImage, fa.as[0].Type)
	assert.Equal(t, "https://cdn.example.com/a.png", fa.as[0].Url)
}

func TestUserFacing(t *testing.T) {
	msg := UserFacing(errorx.New(errno.ForbiddenErrCode))
	assert.NotEmpty(t, msg)
	// 非业务错误回落到通用文案, 不把内部细节透给客户端
	generic := UserFacing(errors.New("dial tcp: connection refused"))
	assert.NotEmpty(t, generic)
	assert.NotContains(t, generic, "dial tcp")
}
