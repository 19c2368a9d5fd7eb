package chat

import (
	"regexp"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/parsa-ai/parsa-core-api/pkg/errorx"
	"github.com/parsa-ai/parsa-core-api/types/errno"
)

// 控制字符会破坏上游报文和前端渲染, 入库前统一剥掉
var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// SanitizeContent 剥离控制字符并裁剪首尾空白
func SanitizeContent(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}

// clampContent 单条消息进入上下文前的硬边界: 剥控制字符, 超长按字符数截断
// 历史消息和system提示词可能来自旧数据或更新接口, 不能假设已经干净
func clampContent(s string) string {
	s = SanitizeContent(s)
	if r := []rune(s); len(r) > cst.MaxMessageChars {
		return string(r[:cst.MaxMessageChars])
	}
	return s
}

// BuildContext 组装上游消息列表: system提示词 + 历史 + 本轮用户输入
// 每条消息过clampContent, 超过消息总数上限直接报错而非截断, 由用户自行开新对话
func BuildContext(systemPrompt string, history []*message.Message, userText string) ([]*schema.Message, error) {
	msgs := make([]*schema.Message, 0, len(history)+2)
	if sys := clampContent(systemPrompt); sys != "" {
		msgs = append(msgs, schema.SystemMessage(sys))
	}
	for _, h := range history {
		content := clampContent(h.Content)
		switch message.RoleItoS[h.Role] {
		case cst.User:
			msgs = append(msgs, schema.UserMessage(content))
		case cst.Assistant:
			msgs = append(msgs, schema.AssistantMessage(content, nil))
		case cst.System:
			msgs = append(msgs, schema.SystemMessage(content))
		}
	}
	msgs = append(msgs, schema.UserMessage(clampContent(userText)))
	if len(msgs) > cst.MaxContextMessages {
		return nil, errorx.New(errno.ChatContextErrCode)
	}
	return msgs, nil
}
