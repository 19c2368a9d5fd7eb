package adaptor

// SSE流处理

import (
	"context"
	"strconv"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
)

// SSEStream SSE事件流
// 生产方通过Send写入事件并在结束时Close, 输出方写失败时Abort, 生产方借此感知客户端断开
type SSEStream struct {
	C    chan *sse.Event
	Done chan struct{}
	id   int
	once sync.Once
}

// NewSSEStream 创建事件流
func NewSSEStream() *SSEStream {
	return &SSEStream{C: make(chan *sse.Event, 100), id: 0, Done: make(chan struct{})}
}

// Send 写入一个事件, 返回流是否仍然可写
func (s *SSEStream) Send(e *sse.Event) bool {
	select {
	case s.C <- e:
		return true
	case <-s.Done:
		return false
	}
}

// Abort 输出侧终止, 之后的Send直接失败
func (s *SSEStream) Abort() {
	s.once.Do(func() { close(s.Done) })
}

// Close 生产侧结束, 不再有新事件
func (s *SSEStream) Close() {
	close(s.C)
}

// Nex 获取下一个事件并返回是否关闭
func (s *SSEStream) Nex() (*sse.Event, bool) {
	event, ok := <-s.C
	if !ok {
		return nil, false
	}
	event.ID = strconv.Itoa(s.id)
	s.id++
	return event, true
}

// ReplySSE 将事件流写入http响应, 写失败视为客户端断开
func ReplySSE(ctx context.Context, c *app.RequestContext, s *SSEStream) {
	w := sse.NewWriter(c)
	defer func() {
		if err := w.Close(); err != nil {
			logs.CtxWarnf(ctx, "close sse writer err: %s", errorx.ErrorWithoutStack(err))
		}
	}()
	for {
		e, ok := s.Nex()
		if !ok {
			return
		}
		if err := w.Write(e); err != nil {
			logs.CtxInfof(ctx, "write sse err, client may be gone: %s", errorx.ErrorWithoutStack(err))
			s.Abort()
			return
		}
	}
}

// eventPayload 下发给客户端的事件体
type eventPayload struct {
	Content   string `json:"content,omitempty"`
	Done      bool   `json:"done"`
	MessageId string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChatEvent 一段增量内容
func ChatEvent(content string) *sse.Event {
	return event(&eventPayload{Content: content})
}

// EndEvent 正常结束, 带落库后的消息id
func EndEvent(messageId string) *sse.Event {
	return event(&eventPayload{Done: true, MessageId: messageId})
}

// ErrEvent 异常结束
func ErrEvent(msg string) *sse.Event {
	return event(&eventPayload{Done: true, Error: msg})
}

func event(obj any) *sse.Event {
	data, err := sonic.Marshal(obj)
	if err != nil {
		logs.Errorf("marshal sse event err: %s", errorx.ErrorWithoutStack(err))
		return &sse.Event{Data: []byte("{}")}
	}
	return &sse.Event{Data: data}
}
