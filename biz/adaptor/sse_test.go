package adaptor

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEStreamSendAndClose(t *testing.T) {
	s := NewSSEStream()
	assert.True(t, s.Send(ChatEvent("a")))
	assert.True(t, s.Send(EndEvent("665f00000000000000000001")))
	s.Close()

	e, ok := s.Nex()
	require.True(t, ok)
	assert.Equal(t, "0", e.ID)
	e, ok = s.Nex()
	require.True(t, ok)
	assert.Equal(t, "1", e.ID)
	_, ok = s.Nex()
	assert.False(t, ok)
}

func TestSSEStreamAbort(t *testing.T) {
	s := NewSSEStream()
	s.Abort()
	s.Abort() // 幂等
	// 填满缓冲后输出侧已终止, Send不能卡死
	for i := 0; i < cap(s.C)+10; i++ {
		s.Send(ChatEvent("x"))
	}
	assert.False(t, s.Send(ChatEvent("y")))
}

func TestEventPayloads(t *testing.T) {
	var p struct {
		Content   string `json:"content"`
		Done      bool   `json:"done"`
		MessageId string `json:"messageId"`
		Error     string `json:"error"`
	}

	require.NoError(t, sonic.Unmarshal(ChatEvent("سلام").Data, &p))
	assert.Equal(t, "سلام", p.Content)
	assert.False(t, p.Done)

	require.NoError(t, sonic.Unmarshal(EndEvent("mid1").Data, &p))
	assert.True(t, p.Done)
	assert.Equal(t, "mid1", p.MessageId)
	assert.Empty(t, p.Error)

	require.NoError(t, sonic.Unmarshal(ErrEvent("خطا").Data, &p))
	assert.True(t, p.Done)
	assert.Equal(t, "خطا", p.Error)
}
