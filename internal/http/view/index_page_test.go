package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndexPage(t *testing.T) {
	html, err := RenderIndexPage(IndexPageData{})
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Gifs</title>")
	assert.Contains(t, html, `name="gifName"`)
	assert.Contains(t, html, `name="gifUrl"`)
	assert.Contains(t, html, "const gifsURL = ")
	assert.Contains(t, html, `value="Add Gif!"`)
}
