package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "guide.txt", "How to use layers.")

	doc, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "guide.txt", doc.Name)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, "How to use layers.", doc.Text)
}

func TestLoad_Markdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# What's New\n\n- NEW: Generative Fill")

	doc, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Generative Fill")
}

func TestLoad_HTMLConvertsToMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html",
		`<html><body><h1>Layers</h1><p>Use the <b>Layers panel</b>.</p></body></html>`)

	doc, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "# Layers")
	assert.Contains(t, doc.Text, "**Layers panel**")
	assert.NotContains(t, doc.Text, "<p>")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "image.png", "not a document")

	_, err := NewLoader().Load(path)
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "b.md", "b")
	writeFile(t, dir, "c.txt", "c")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writeFile(t, dir, filepath.Join("sub", "d.md"), "d")

	paths, err := Expand([]string{filepath.Join(dir, "**", "*.md")})
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	// Literal paths pass through untouched, and duplicates collapse.
	literal := filepath.Join(dir, "c.txt")
	paths, err = Expand([]string{literal, literal})
	require.NoError(t, err)
	assert.Equal(t, []string{literal}, paths)

	// A pattern matching nothing contributes nothing.
	paths, err = Expand([]string{filepath.Join(dir, "*.pdf")})
	require.NoError(t, err)
	assert.Empty(t, paths)
}
