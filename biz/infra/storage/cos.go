package storage

import (
	"context"
	"io"
	"net/http"

	"github.com/parsa-ai/parsa-core-api/biz/infra/config"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util"
	"github.com/parsa-ai/parsa-core-api/biz/infra/util/httpx"
	"github.com/tencentyun/cos-go-sdk-v5"
)

var _ COS = (*cosClient)(nil)

type COS interface {
	Upload(ctx context.Context, key string, r io.Reader, opt *cos.ObjectPutOptions) (*cos.Response, error)
	GetPermanentAccessURL(key string) string
}

type cosClient struct {
	Conf   *config.COS
	Client *cos.Client
}

// NewCOS 未配置对象存储时返回nil, 上层据此关闭附件上传
func NewCOS(c *config.Config) COS {
	if c.COS == nil {
		return nil
	}
	return newcosClient(c)
}

// Upload 上传对象
// key 对象键 应为/{user_id}/时间戳_文件名
// opt 上传配置，包括缓存策略等 允许为空
func (c *cosClient) Upload(ctx context.Context, key string, r io.Reader, opt *cos.ObjectPutOptions) (*cos.Response, error) {
	if opt == nil {
		opt = &cos.ObjectPutOptions{}
	}
	resp, err := c.Client.Object.Put(ctx, key, r, opt)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *cosClient) GetPermanentAccessURL(key string) string {
	return c.Client.Object.GetObjectURL(key).String()
}

func newcosClient(c *config.Config) *cosClient {
	b := &cos.BaseURL{
		BucketURL: util.Str2URL(c.COS.BucketURL), // 访问 bucket, object 相关 API 的基础 URL（不包含 path 部分）
	}
	client := cos.NewClient(b, mustNewCOSHTTPClient(c))
	return &cosClient{
		Conf:   c.COS,
		Client: client,
	}
}

func mustNewCOSHTTPClient(c *config.Config) *http.Client {
	// 与全局单例http客户端采用不同transport，单独为cos服务创建新http客户端实例
	// 其余配置复用单例cli
	gCli := httpx.GetHttpClient()

	authTransport := &cos.AuthorizationTransport{
		SecretID:  c.COS.SecretId,
		SecretKey: c.COS.SecretKey,
		Transport: gCli.Client.Transport,
	}

	return &http.Client{
		Transport: authTransport,
	}
}
