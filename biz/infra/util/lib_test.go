package util

import (
	"testing"

	"github.com/parsa-ai/parsa-core-api/biz/application/dto/basic"
	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "****", Mask(""))
	assert.Equal(t, "****", Mask("short"))
	assert.Equal(t, "sk-or-v1...wxyz", Mask("sk-or-v1-abcdefgh-wxyz"))
}

func TestHasMore(t *testing.T) {
	page, size := int64(1), int64(10)
	p := &basic.Page{Page: &page, Size: &size}
	assert.True(t, HasMore(11, p))
	assert.False(t, HasMore(10, p))
	assert.False(t, HasMore(0, p))
}

func TestSplitAndHasMore(t *testing.T) {
	size := int64(3)
	p := &basic.Page{Size: &size}

	// 多取一条判断hasMore
	ans, hasMore := SplitAndHasMore([]int{1, 2, 3, 4}, p)
	assert.Equal(t, []int{1, 2, 3}, ans)
	assert.True(t, hasMore)

	ans, hasMore = SplitAndHasMore([]int{1, 2}, p)
	assert.Equal(t, []int{1, 2}, ans)
	assert.False(t, hasMore)
}

func TestObjectIDsFromHex(t *testing.T) {
	ids, err := ObjectIDsFromHex("665f00000000000000000001", "665f00000000000000000002")
	assert.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = ObjectIDsFromHex("not-an-oid")
	assert.Error(t, err)
}
