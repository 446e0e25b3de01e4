package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("**printer** is `offline`")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>printer</strong>")
	assert.Contains(t, out, "<code>offline</code>")
}

func TestRenderer_RenderStripsScripts(t *testing.T) {
	r := NewRenderer()

	out := r.Render("hello <script>alert(1)</script> [link](javascript:alert(1))")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hello")
}

func TestRenderer_HardWraps(t *testing.T) {
	out := NewRenderer().Render("line one\nline two")
	assert.Contains(t, out, "<br")
}
