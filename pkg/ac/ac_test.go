package ac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcSearch(t *testing.T) {
	dict := []string{"بد", "زشت"}
	require.NoError(t, InitAc(dict))

	found, words := AcSearch("این حرف بد بود", dict, false)
	assert.True(t, found)
	assert.Contains(t, words, "بد")

	found, _ = AcSearch("حرف خوبی بود", dict, false)
	assert.False(t, found)
}

func TestAcMask(t *testing.T) {
	dict := []string{"بد", "زشت"}
	require.NoError(t, InitAc(dict))

	assert.Equal(t, "حرف ** نزن", AcMask("حرف بد نزن", dict))
	assert.Equal(t, "سلام", AcMask("سلام", dict))
	assert.Equal(t, "", AcMask("", dict))
	assert.Equal(t, "x", AcMask("x", nil))
}
