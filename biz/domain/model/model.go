package model

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
)

type getModelFunc func(ctx context.Context, uid, name string) (model.BaseChatModel, error)

var models = map[string]getModelFunc{}

func RegisterModel(name string, f getModelFunc) {
	models[name] = f
}

// GetModel 获取模型
// 未注册的name视为openrouter上的模型标识, 走默认provider
func GetModel(ctx context.Context, name, uid string) (model.BaseChatModel, error) {
	if f, ok := models[name]; ok {
		return f(ctx, uid, name)
	}
	return models[cst.ProviderOpenRouter](ctx, uid, name)
}
