package chat

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/parsa-ai/parsa-core-api/biz/infra/cst"
	"github.com/parsa-ai/parsa-core-api/biz/infra/mapper/message"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeContent(t *testing.T) {
	assert.Equal(t, "hello", SanitizeContent("  hello  "))
	assert.Equal(t, "ab", SanitizeContent("a\x00b"))
	assert.Equal(t, "ab", SanitizeContent("a\x1bb\x7f"))
	assert.Equal(t, "", SanitizeContent(" \t\n "))
	assert.Equal(t, "سلام", SanitizeContent("سلام\r\n"))
}

func TestBuildContext(t *testing.T) {
	history := []*message.Message{
		{Content: "سوال اول", Role: message.RoleStoI[cst.User]},
		{Content: "پاسخ اول", Role: message.RoleStoI[cst.Assistant]},
	}
	msgs, err := BuildContext("راهنما باش", history, "سوال دوم")
	assert.NoError(t, err)
	assert.Len(t, msgs, 4)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "راهنما باش", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
	assert.Equal(t, schema.User, msgs[3].Role)
	assert.Equal(t, "سوال دوم", msgs[3].Content)
}

func TestBuildContextNoSystemPrompt(t *testing.T) {
	msgs, err := BuildContext("", nil, "hi")
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
}

func TestBuildContextClampsEntries(t *testing.T) {
	long := strings.Repeat("ب", cst.MaxMessageChars+50)
	history := []*message.Message{
		{Content: "dirty\x00\x1b" + long, Role: message.RoleStoI[cst.Assistant]},
	}
	msgs, err := BuildContext("sys\x00prompt", history, "ok")
	assert.NoError(t, err)
	assert.Len(t, msgs, 3)

	// system提示词同样剥控制字符
	assert.Equal(t, "sysprompt", msgs[0].Content)

	// 历史消息剥控制字符并按字符数截断
	got := msgs[1].Content
	assert.NotContains(t, got, "\x00")
	assert.NotContains(t, got, "\x1b")
	assert.Len(t, []rune(got), cst.MaxMessageChars)
	assert.True(t, strings.HasPrefix(got, "dirty"))
}

func TestBuildContextDropsBlankSystemPrompt(t *testing.T) {
	// 只剩控制字符的system提示词等价于没有
	msgs, err := BuildContext("\x00\x1b \t", nil, "hi")
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
}

func TestBuildContextOverLimit(t *testing.T) {
	history := make([]*message.Message, cst.MaxContextMessages)
	for i := range history {
		history[i] = &message.Message{Content: "x", Role: message.RoleStoI[cst.User]}
	}
	_, err := BuildContext("sys", history, "one more")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab"+cst.Ellipsis, Truncate("abcd", 2))
	// 多字节字符按rune截断
	assert.Equal(t, "سلام"+cst.Ellipsis, Truncate("سلام دنیا", 4))
	assert.Equal(t, "x", Truncate("  x  ", 5))
	assert.Equal(t, "", Truncate(strings.Repeat(" ", 10), 3))
}
