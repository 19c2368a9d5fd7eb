package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type ReactReq struct {
	MessageId string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

type ReactResp struct {
	Resp *basic.Response
}

type UnreactReq struct {
	MessageId string `json:"messageId"`
}

type UnreactResp struct {
	Resp *basic.Response
}
