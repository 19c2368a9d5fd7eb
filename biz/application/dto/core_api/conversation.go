package core_api

import "github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"

type Conversation struct {
	ConversationId string `json:"conversationId"`
	FolderId       string `json:"folderId,omitempty"`
	Brief          string `json:"brief"`
	Model          string `json:"model"`
	SystemPrompt   string `json:"systemPrompt,omitempty"`
	Pinned         bool   `json:"pinned"`
	Archived       bool   `json:"archived"`
	CreateTime     int64  `json:"createTime"`
	UpdateTime     int64  `json:"updateTime"`
}

type Message struct {
	MessageId      string   `json:"messageId"`
	ConversationId string   `json:"conversationId"`
	Role           string   `json:"role"`
	Content        string   `json:"content"`
	Index          int32    `json:"index"`
	CreateTime     int64    `json:"createTime"`
	Reactions      []string `json:"reactions,omitempty"`
}

type CreateConversationReq struct {
	FolderId     string `json:"folderId,omitempty"`
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}

type CreateConversationResp struct {
	Resp           *basic.Response
	ConversationId string `json:"conversationId"`
}

type ListConversationReq struct {
	FolderId *string     `query:"folderId" json:"folderId,omitempty"`
	Archived bool        `query:"archived" json:"archived,omitempty"`
	Page     *basic.Page `json:"page,omitempty"`
}

func (r *ListConversationReq) GetPage() *basic.Page { return r.Page }

type ListConversationResp struct {
	Resp          *basic.Response
	Conversations []*Conversation `json:"conversations"`
	HasMore       bool            `json:"hasMore"`
	Cursor        string          `json:"cursor,omitempty"`
}

type GetConversationReq struct {
	ConversationId string      `query:"conversationId" json:"conversationId"`
	Page           *basic.Page `json:"page,omitempty"`
}

func (r *GetConversationReq) GetConversationId() string { return r.ConversationId }
func (r *GetConversationReq) GetPage() *basic.Page      { return r.Page }

type GetConversationResp struct {
	Resp         *basic.Response
	Conversation *Conversation `json:"conversation"`
	MessageList  []*Message    `json:"messageList"`
	HasMore      bool          `json:"hasMore"`
	Cursor       string        `json:"cursor,omitempty"`
}

// UpdateConversationReq 空指针字段不更新
type UpdateConversationReq struct {
	ConversationId string  `json:"conversationId"`
	Brief          *string `json:"brief,omitempty"`
	FolderId       *string `json:"folderId,omitempty"`
	SystemPrompt   *string `json:"systemPrompt,omitempty"`
	Model          *string `json:"model,omitempty"`
}

type UpdateConversationResp struct {
	Resp *basic.Response
}

type PinConversationReq struct {
	ConversationId string `json:"conversationId"`
}

type PinConversationResp struct {
	Resp   *basic.Response
	Pinned bool `json:"pinned"`
}

type ArchiveConversationReq struct {
	ConversationId string `json:"conversationId"`
}

type ArchiveConversationResp struct {
	Resp     *basic.Response
	Archived bool `json:"archived"`
}

type DeleteConversationReq struct {
	ConversationId string `json:"conversationId"`
}

type DeleteConversationResp struct {
	Resp *basic.Response
}

type SearchConversationReq struct {
	Key  string      `query:"key" json:"key"`
	Page *basic.Page `json:"page,omitempty"`
}

func (r *SearchConversationReq) GetKey() string       { return r.Key }
func (r *SearchConversationReq) GetPage() *basic.Page { return r.Page }

type SearchConversationResp struct {
	Resp          *basic.Response
	Conversations []*Conversation `json:"conversations"`
	HasMore       bool            `json:"hasMore"`
	Cursor        string          `json:"cursor,omitempty"`
}
