package model

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/apikey"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util/httpx"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

func init() {
	RegisterModel(cst.ProviderOpenRouter, NewOpenRouterChatModel)
}

const completionsPath = "/chat/completions"

// OpenRouterChatModel 通过openrouter的completions接口对话
// 凭证优先取管理端录入的启用记录, 没有再回退到配置文件
type OpenRouterChatModel struct {
	baseURL string
	apiKey  string
	model   string
	uid     string
}

func NewOpenRouterChatModel(ctx context.Context, uid, name string) (model.BaseChatModel, error) {
	c := config.GetConfig()
	key := resolveKey(ctx, c)
	if key == "" {
		return nil, errorx.New(errno.ChatUpstreamKeyErrCode)
	}
	if !strings.HasPrefix(key, "sk-or-") {
		logs.CtxWarnf(ctx, "[openrouter] api key format looks unusual")
	}
	m := c.OpenRouter.Model
	if name != "" && name != cst.ProviderOpenRouter {
		m = name
	}
	return &OpenRouterChatModel{
		baseURL: strings.TrimSuffix(c.OpenRouter.BaseURL, "/"),
		apiKey:  key,
		model:   m,
		uid:     uid,
	}, nil
}

func resolveKey(ctx context.Context, c *config.Config) string {
	if k, err := apikey.Mapper.FindActiveByProvider(ctx, cst.ProviderOpenRouter); err == nil && k.Key != "" {
		return k.Key
	}
	return c.OpenRouter.APIKey
}

// 请求与响应报文, 流式与非流式共用一套choices结构
type chatRequest struct {
	Model    string         `json:"model"`
	Messages []*chatMessage `json:"messages"`
	Stream   bool           `json:"stream"`
	User     string         `json:"user,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

type chatCompletion struct {
	Id      string        `json:"id"`
	Choices []*chatChoice `json:"choices"`
	Error   *chatError    `json:"error,omitempty"`
}

type chatChoice struct {
	Delta        *chatMessage `json:"delta,omitempty"`
	Message      *chatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type chatError struct {
	Code    any    `json:"code,omitempty"`
	Message string `json:"message"`
}

func (c *OpenRouterChatModel) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

func (c *OpenRouterChatModel) request(in []*schema.Message, stream bool) *chatRequest {
	req := &chatRequest{Model: c.model, Stream: stream, User: c.uid}
	for _, m := range in {
		req.Messages = append(req.Messages, &chatMessage{Role: string(m.Role), Content: m.Content})
	}
	return req
}

// Generate 非流式补全, 标题生成等一次性调用走这里
func (c *OpenRouterChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	resp, err := httpx.Post[*chatCompletion](ctx, c.baseURL+completionsPath, c.headers(), c.request(in, false))
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, errorx.WrapByCode(errors.New(resp.Error.Message), errno.ChatErrCode)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, errorx.WrapByCode(errors.New("empty choices"), errno.ChatErrCode)
	}
	return &schema.Message{Role: schema.Assistant, Content: resp.Choices[0].Message.Content}, nil
}

// Stream 流式补全
// 上游片段经Decoder还原后逐条送入pipe, 收到结束哨兵或流自然结束时关闭writer
func (c *OpenRouterChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	reader, err := httpx.GetHttpClient().StreamPost(ctx, c.baseURL+completionsPath, c.headers(), c.request(in, true))
	if err != nil {
		return nil, err
	}
	sr, sw := schema.Pipe[*schema.Message](5)
	go c.decode(ctx, reader, sw)
	return sr, nil
}

func (c *OpenRouterChatModel) decode(ctx context.Context, reader *httpx.StreamReader, writer *schema.StreamWriter[*schema.Message]) {
	defer func() { _ = reader.Close() }()
	defer writer.Close()

	d := NewDecoder()
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := reader.Read(buf)
		if n > 0 {
			for _, payload := range d.Feed(buf[:n]) {
				if payload == cst.DoneSentinel {
					return
				}
				if closed := c.emit(ctx, payload, writer); closed {
					return
				}
			}
		}
		if err != nil {
			// 上游不下发结束哨兵时以EOF作为自然结束
			if !errors.Is(err, io.EOF) {
				writer.Send(nil, err)
			}
			return
		}
	}
}

// emit 解析一条data负载并写入pipe, 返回pipe是否已被读端关闭
func (c *OpenRouterChatModel) emit(ctx context.Context, payload string, writer *schema.StreamWriter[*schema.Message]) bool {
	var chunk chatCompletion
	if err := sonic.UnmarshalString(payload, &chunk); err != nil {
		// 跳过无法解析的片段, 与上游保持宽松
		logs.CtxWarnf(ctx, "[openrouter] skip malformed chunk: %v", err)
		return false
	}
	if chunk.Error != nil {
		return writer.Send(nil, errorx.WrapByCode(errors.New(chunk.Error.Message), errno.ChatErrCode))
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta == nil || chunk.Choices[0].Delta.Content == "" {
		return false
	}
	return writer.Send(&schema.Message{Role: schema.Assistant, Content: chunk.Choices[0].Delta.Content}, nil)
}
