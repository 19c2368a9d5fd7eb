package errorx

import (
	"errors"
	"testing"

	"github.com/parsa-ai/parsa-core-api/pkg/errorx/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	code.Register(99901, "مشکلی پیش آمد: {reason}")
}

func TestNew(t *testing.T) {
	err := New(99901, KV("reason", "تست"))
	var se StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int32(99901), se.Code())
	assert.Equal(t, "مشکلی پیش آمد: تست", se.Msg())
}

func TestWrapByCode(t *testing.T) {
	assert.Nil(t, WrapByCode(nil, 99901))

	cause := errors.New("mongo: no documents in result")
	err := WrapByCode(cause, 99901)
	var se StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int32(99901), se.Code())
	assert.True(t, errors.Is(err, cause))

	// 已带业务码的错误不重复包装
	again := WrapByCode(err, 40001)
	var se2 StatusError
	require.True(t, errors.As(again, &se2))
	assert.Equal(t, int32(99901), se2.Code())
}

func TestUnknownCode(t *testing.T) {
	err := New(12345678)
	var se StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "未知错误", se.Msg())
}

func TestErrorWithoutStack(t *testing.T) {
	assert.Equal(t, "<nil>", ErrorWithoutStack(nil))
	assert.Equal(t, "boom", ErrorWithoutStack(errors.New("boom")))
}
