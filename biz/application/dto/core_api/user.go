package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type UserInfo struct {
	UserId     string `json:"userId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Admin      bool   `json:"admin"`
	CreateTime int64  `json:"createTime"`
}

// LoginReq 身份提供方回调后携带的已验证身份信息
// 身份验证本身由外部服务完成, 这里只做换发会话token
type LoginReq struct {
	ExternalId string `json:"externalId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
}

type LoginResp struct {
	Resp  *basic.Response
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type GetMeReq struct{}

type GetMeResp struct {
	Resp *basic.Response
	User *UserInfo `json:"user"`
}
