package code

import (
	"fmt"
	"sync"
)

// 错误码注册表
// 各模块在init中注册自己的错误码, errorx按码取文案

type Definition struct {
	Code            int32
	Msg             string
	AffectStability bool
}

type RegisterOption func(*Definition)

// WithAffectStability 标记该错误是否影响服务稳定性指标
func WithAffectStability(affect bool) RegisterOption {
	return func(d *Definition) {
		d.AffectStability = affect
	}
}

var (
	mu       sync.RWMutex
	registry = map[int32]*Definition{}
)

func Register(code int32, msg string, opts ...RegisterOption) {
	d := &Definition{Code: code, Msg: msg}
	for _, opt := range opts {
		opt(d)
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[code]; ok {
		panic(fmt.Sprintf("duplicate error code: %d", code))
	}
	registry[code] = d
}

func Find(code int32) (*Definition, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[code]
	return d, ok
}
