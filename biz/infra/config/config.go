package config

import (
	"os"
	"sync"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var (
	config *Config
	once   sync.Once
)

type Auth struct {
	SecretKey    string
	AccessExpire int64
}

type Mongo struct {
	URL string
	DB  string
}

// OpenRouter 上游补全服务的默认配置, 管理端录入的key优先于这里的APIKey
type OpenRouter struct {
	BaseURL string
	APIKey  string `json:",optional"`
	Model   string
}

type COS struct {
	BucketURL string
	SecretId  string
	SecretKey string
}

type Chat struct {
	// SystemPrompt 无自定义提示词时的默认system消息
	SystemPrompt string
	// TitleGen 标题生成提示词模板, %s处填充用户消息
	TitleGen string
	// SensitiveWords 屏蔽词表, 为空则关闭过滤
	SensitiveWords []string `json:",optional"`
}

type Config struct {
	service.ServiceConf
	ListenOn   string
	Auth       Auth
	Mongo      Mongo
	Cache      cache.CacheConf `json:",optional"`
	OpenRouter OpenRouter
	COS        *COS `json:",optional"`
	Chat       Chat
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return config, nil
}

func GetConfig() *Config {
	return config
}
