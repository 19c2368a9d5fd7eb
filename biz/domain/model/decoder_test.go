package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecoderSingleEvent(t *testing.T) {
	d := NewDecoder()
	payloads := d.Feed([]byte("data: {\"id\":\"1\"}\n\n"))
	assert.Equal(t, []string{"{\"id\":\"1\"}"}, payloads)
	assert.Empty(t, d.Rest())
}

func TestDecoderChunkBoundary(t *testing.T) {
	d := NewDecoder()
	// 行被块边界劈开, 半行应留在缓冲里
	assert.Empty(t, d.Feed([]byte("data: hel")))
	assert.Equal(t, "data: hel", d.Rest())
	assert.Equal(t, []string{"hello"}, d.Feed([]byte("lo\n")))
	assert.Empty(t, d.Rest())
}

func TestDecoderCRLF(t *testing.T) {
	d := NewDecoder()
	payloads := d.Feed([]byte("data: x\r\ndata: y\r\n\r\n"))
	assert.Equal(t, []string{"x", "y"}, payloads)
}

func TestDecoderSkipsNonData(t *testing.T) {
	d := NewDecoder()
	payloads := d.Feed([]byte(": keep-alive\nevent: ping\nid: 3\ndata: ok\n"))
	assert.Equal(t, []string{"ok"}, payloads)
}

func TestDecoderNoSpaceAfterColon(t *testing.T) {
	d := NewDecoder()
	assert.Equal(t, []string{"raw"}, d.Feed([]byte("data:raw\n")))
}

func TestDecoderDoneSentinel(t *testing.T) {
	d := NewDecoder()
	assert.Equal(t, []string{"[DONE]"}, d.Feed([]byte("data: [DONE]\n\n")))
}

func TestDecoderMultipleEventsOneChunk(t *testing.T) {
	d := NewDecoder()
	payloads := d.Feed([]byte("data: a\n\ndata: b\n\ndata: c\n"))
	assert.Equal(t, []string{"a", "b", "c"}, payloads)
}
