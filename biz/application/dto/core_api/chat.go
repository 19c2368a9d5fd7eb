package core_api

// ChatReq 发起一轮对话
// conversationId为空时自动新建会话
type ChatReq struct {
	Message        string `json:"message"`
	ConversationId string `json:"conversationId,omitempty"`
	Model          string `json:"model,omitempty"`
	ImageUrl       string `json:"imageUrl,omitempty"`
}

// DemoChatReq 未登录体验对话
type DemoChatReq struct {
	Message string `json:"message"`
}
