package util

import (
	"net/url"

	"github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"
)

// Success 返回成功的basic.Response指针
func Success() *basic.Response {
	return &basic.Response{
		Code: 200,
		Msg:  "success",
	}
}

func Str2URL(s string) *url.URL {
	u, _ := url.Parse(s)
	return u
}

// Mask 掩码展示密钥, 只保留首尾
func Mask(s string) string {
	if len(s) <= 12 {
		return "****"
	}
	return s[:8] + "..." + s[len(s)-4:]
}
