package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/apikey"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestEmitDelta(t *testing.T) {
	sr, sw := schema.Pipe[*schema.Message](5)
	c := &OpenRouterChatModel{}
	closed := c.emit(context.Background(), `{"choices":[{"delta":{"content":"hi"}}]}`, sw)
	assert.False(t, closed)
	sw.Close()
	msg, err := sr.Recv()
	assert.NoError(t, err)
	assert.Equal(t, "hi", msg.Content)
	_, err = sr.Recv()
	assert.True(t, errors.Is(err, io.EOF))
	sr.Close()
}

func TestEmitSkipsMalformedAndEmpty(t *testing.T) {
	sr, sw := schema.Pipe[*schema.Message](5)
	c := &OpenRouterChatModel{}
	assert.False(t, c.emit(context.Background(), `not json at all`, sw))
	assert.False(t, c.emit(context.Background(), `{"choices":[]}`, sw))
	assert.False(t, c.emit(context.Background(), `{"choices":[{"delta":{"content":""}}]}`, sw))
	sw.Close()
	_, err := sr.Recv()
	assert.True(t, errors.Is(err, io.EOF))
	sr.Close()
}

func TestEmitUpstreamError(t *testing.T) {
	sr, sw := schema.Pipe[*schema.Message](5)
	c := &OpenRouterChatModel{}
	c.emit(context.Background(), `{"error":{"code":429,"message":"rate limited"}}`, sw)
	sw.Close()
	_, err := sr.Recv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	sr.Close()
}

func TestStream(t *testing.T) {
	chunks := []string{"سلام", " ", "دنیا"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, completionsPath, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"stream":true`)
		w.Header().Set("Content-Type", "text/event-stream")
		f := w.(http.Flusher)
		for _, c := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", c)
			f.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		f.Flush()
	}))
	defer srv.Close()

	c := &OpenRouterChatModel{baseURL: srv.URL, apiKey: "test-key", model: "test/model"}
	reader, err := c.Stream(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	assert.NoError(t, err)
	defer reader.Close()

	var sb strings.Builder
	for {
		msg, err := reader.Recv()
		if err != nil {
			assert.True(t, errors.Is(err, io.EOF))
			break
		}
		sb.WriteString(msg.Content)
	}
	assert.Equal(t, "سلام دنیا", sb.String())
}

func TestStreamWithoutSentinel(t *testing.T) {
	// 上游不发结束哨兵, EOF也应视为自然结束
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n")
	}))
	defer srv.Close()

	c := &OpenRouterChatModel{baseURL: srv.URL, apiKey: "k", model: "m"}
	reader, err := c.Stream(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	assert.NoError(t, err)
	defer reader.Close()

	msg, err := reader.Recv()
	assert.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)
	_, err = reader.Recv()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"عنوان کوتاه"}}]}`)
	}))
	defer srv.Close()

	c := &OpenRouterChatModel{baseURL: srv.URL, apiKey: "k", model: "m"}
	msg, err := c.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	assert.NoError(t, err)
	assert.Equal(t, "عنوان کوتاه", msg.Content)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"invalid model"}}`)
	}))
	defer srv.Close()

	c := &OpenRouterChatModel{baseURL: srv.URL, apiKey: "k", model: "m"}
	_, err := c.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	assert.Error(t, err)
}

type fakeApiKeyMapper struct {
	key string
	err error
}

func (f *fakeApiKeyMapper) FindActiveByProvider(ctx context.Context, provider string) (*apikey.ApiKey, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &apikey.ApiKey{Provider: provider, Key: f.key, Active: true}, nil
}
func (f *fakeApiKeyMapper) UpsertByProvider(ctx context.Context, provider, key string) (*apikey.ApiKey, error) {
	return nil, nil
}
func (f *fakeApiKeyMapper) UpdateById(ctx context.Context, id string, set bson.M) error { return nil }
func (f *fakeApiKeyMapper) DeleteById(ctx context.Context, id string) error             { return nil }
func (f *fakeApiKeyMapper) ListAll(ctx context.Context) ([]*apikey.ApiKey, error)       { return nil, nil }

func TestResolveKey(t *testing.T) {
	old := apikey.Mapper
	defer func() { apikey.Mapper = old }()

	c := &config.Config{}
	c.OpenRouter.APIKey = "sk-or-from-config"

	// 管理端录入的key优先
	apikey.Mapper = &fakeApiKeyMapper{key: "sk-or-from-db"}
	assert.Equal(t, "sk-or-from-db", resolveKey(context.Background(), c))

	// 库里没有则回退配置
	apikey.Mapper = &fakeApiKeyMapper{err: errors.New("not found")}
	assert.Equal(t, "sk-or-from-config", resolveKey(context.Background(), c))
}

func TestGetModelFallsBackToOpenRouter(t *testing.T) {
	old := models[cst.ProviderOpenRouter]
	defer func() { models[cst.ProviderOpenRouter] = old }()

	var gotName string
	RegisterModel(cst.ProviderOpenRouter, func(ctx context.Context, uid, name string) (einomodel.BaseChatModel, error) {
		gotName = name
		return nil, nil
	})
	_, err := GetModel(context.Background(), "vendor/some-model", "u1")
	assert.NoError(t, err)
	assert.Equal(t, "vendor/some-model", gotName)
}
