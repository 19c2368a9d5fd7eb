package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type Folder struct {
	FolderId   string `json:"folderId"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	CreateTime int64  `json:"createTime"`
	UpdateTime int64  `json:"updateTime"`
}

type CreateFolderReq struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type CreateFolderResp struct {
	Resp   *basic.Response
	Folder *Folder `json:"folder"`
}

type ListFolderReq struct{}

type ListFolderResp struct {
	Resp    *basic.Response
	Folders []*Folder `json:"folders"`
}

type UpdateFolderReq struct {
	FolderId string  `json:"folderId"`
	Name     *string `json:"name,omitempty"`
	Color    *string `json:"color,omitempty"`
}

type UpdateFolderResp struct {
	Resp *basic.Response
}

type DeleteFolderReq struct {
	FolderId string `json:"folderId"`
}

type DeleteFolderResp struct {
	Resp *basic.Response
}
