package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type AdminStatsReq struct{}

type AdminStatsResp struct {
	Resp               *basic.Response
	TotalUsers         int64 `json:"totalUsers"`
	TotalConversations int64 `json:"totalConversations"`
	TotalMessages      int64 `json:"totalMessages"`
	AdminUsers         int64 `json:"adminUsers"`
}

type ListUserReq struct {
	Page *basic.Page `json:"page,omitempty"`
}

func (r *ListUserReq) GetPage() *basic.Page { return r.Page }

type ListUserResp struct {
	Resp    *basic.Response
	Users   []*UserInfo `json:"users"`
	HasMore bool        `json:"hasMore"`
}

type SetAdminReq struct {
	UserId string `json:"userId"`
	Admin  bool   `json:"admin"`
}

type SetAdminResp struct {
	Resp *basic.Response
	User *UserInfo `json:"user"`
}

// ApiKeyItem key只回传掩码
type ApiKeyItem struct {
	Id         string `json:"id"`
	Provider   string `json:"provider"`
	Key        string `json:"key"`
	Active     bool   `json:"active"`
	CreateTime int64  `json:"createTime"`
	UpdateTime int64  `json:"updateTime"`
}

type ListApiKeyReq struct{}

type ListApiKeyResp struct {
	Resp    *basic.Response
	ApiKeys []*ApiKeyItem `json:"apiKeys"`
}

type SaveApiKeyReq struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

type SaveApiKeyResp struct {
	Resp   *basic.Response
	ApiKey *ApiKeyItem `json:"apiKey"`
}

type UpdateApiKeyReq struct {
	Id     string  `json:"id"`
	Key    *string `json:"key,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type UpdateApiKeyResp struct {
	Resp *basic.Response
}

type DeleteApiKeyReq struct {
	Id string `json:"id"`
}

type DeleteApiKeyResp struct {
	Resp *basic.Response
}
