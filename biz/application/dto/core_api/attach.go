package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type UploadResp struct {
	Resp     *basic.Response
	Url      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}
