package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/json"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/pkg/logs"
)

// httpx/client 是一个简单的http客户端
// 支持流式与非流式请求, 通过StreamReader包装流式请求的响应

var (
	client *HttpClient
	once   sync.Once
)

const (
	GET  = "GET"
	POST = "POST"
)

// HttpClient 是一个简单的 HTTP 客户端
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 单例模式维护一个client
func NewHttpClient() *HttpClient {
	once.Do(func() {
		client = &HttpClient{
			Client: http.DefaultClient,
		}
	})
	return client
}

func GetHttpClient() *HttpClient {
	return NewHttpClient()
}

// do 发送请求
func (c *HttpClient) do(ctx context.Context, method, url string, headers http.Header, body any) (resp *http.Response, err error) {
	// 序列化 body 为 JSON
	var bodyBytes []byte
	var req *http.Request
	if bodyBytes, err = json.Marshal(body); err != nil {
		return nil, fmt.Errorf("[httpx]请求体序列化失败: %w", err)
	}
	// 创建新的请求
	if req, err = http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes)); err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	// 设置请求头
	for k, vv := range headers {
		req.Header[k] = vv
	}
	// 发送请求
	return c.Client.Do(req)
}

func (c *HttpClient) getResp(ctx context.Context, method, url string, headers http.Header, body any) (resp []byte, err error) {
	var response *http.Response
	if response, err = c.do(ctx, method, url, headers, body); err != nil {
		return nil, fmt.Errorf("[httpx] 发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil {
			logs.Errorf("[httpx] 关闭请求失败: %s", errorx.ErrorWithoutStack(closeErr))
		}
	}()
	// 检查响应状态码
	if err = checkStatusCode(response); err != nil {
		return nil, err
	}
	// 读取响应体
	var _resp []byte
	if _resp, err = io.ReadAll(response.Body); err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	return _resp, nil
}

func checkStatusCode(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_resp, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, _resp)
	}
	return nil
}

// Post 非流式Post请求
func (c *HttpClient) Post(ctx context.Context, url string, headers http.Header, body any) (resp map[string]any, err error) {
	var _resp []byte
	if _resp, err = c.getResp(ctx, POST, url, headers, body); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(_resp, &resp); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}
	return resp, nil
}

// Post 非流式Post请求, 反序列化到指定类型
func Post[T any](ctx context.Context, url string, headers http.Header, body any) (resp T, err error) {
	var _resp []byte
	if _resp, err = GetHttpClient().getResp(ctx, POST, url, headers, body); err != nil {
		return resp, err
	}
	if err = json.Unmarshal(_resp, &resp); err != nil {
		return resp, fmt.Errorf("反序列化响应失败: %w", err)
	}
	return resp, nil
}

// StreamPost 流式Post请求, 调用方负责关闭返回的StreamReader
func (c *HttpClient) StreamPost(ctx context.Context, url string, headers http.Header, body any) (*StreamReader, error) {
	resp, err := c.do(ctx, POST, url, headers, body)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	reader := &StreamReader{
		resp:   resp,
		reader: resp.Body,
	}
	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = reader.Close() }()
		_resp, _ := reader.ReadAll()
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, _resp)
	}
	return reader, nil
}

// StreamReader 流式请求Reader, 封装是为了避免只返回reader时无法关闭resp.Body
// 调用方需要负责将流关闭
type StreamReader struct {
	resp   *http.Response
	reader io.ReadCloser
}

// Read 从Reader中读取
func (r *StreamReader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

// ReadAll 读取所有的
func (r *StreamReader) ReadAll() ([]byte, error) {
	return io.ReadAll(r.reader)
}

// Close 关闭resp.Body
func (r *StreamReader) Close() error {
	return r.resp.Body.Close()
}
