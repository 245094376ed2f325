package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/visual"
)

func TestParseViewports(t *testing.T) {
	t.Parallel()

	vps, err := parseViewports([]string{"desktop", "mobile", "tablet=768x1024"})
	require.NoError(t, err)
	require.Len(t, vps, 3)
	assert.Equal(t, visual.Desktop, vps[0])
	assert.Equal(t, visual.Mobile, vps[1])
	assert.Equal(t, visual.Viewport{Name: "tablet", Width: 768, Height: 1024}, vps[2])

	for _, bad := range []string{"watch", "=100x100", "tv=0x100", "tv=big"} {
		_, err := parseViewports([]string{bad})
		assert.Error(t, err, bad)
	}
}
