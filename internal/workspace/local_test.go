package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocal_ExplicitRoot(t *testing.T) {
	dir := t.TempDir()

	ws, ok := NewLocal(dir)
	require.True(t, ok)

	root, hasRoot := ws.Root()
	require.True(t, hasRoot)
	assert.Equal(t, dir, root)
}

func TestNewLocal_MissingRoot(t *testing.T) {
	_, ok := NewLocal(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.False(t, ok)
}

func TestLocal_ListDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))

	ws, ok := NewLocal(dir)
	require.True(t, ok)

	dirs, err := ws.ListDirs(dir)
	require.NoError(t, err)
	// Files are filtered out, only directories remain.
	assert.ElementsMatch(t, []string{"src", "docs"}, dirs)

	_, err = ws.ListDirs(filepath.Join(dir, "nope"))
	require.Error(t, err)
}

func TestLocal_ActiveDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))

	ws, ok := NewLocal(dir)
	require.True(t, ok)

	_, has := ws.ActiveDocument()
	assert.False(t, has)

	require.NoError(t, ws.SetActiveDocument(path))
	doc, has := ws.ActiveDocument()
	require.True(t, has)
	assert.Equal(t, "package main\n", doc.Content)
	assert.Equal(t, "go", doc.Language)

	// Clearing removes the document.
	require.NoError(t, ws.SetActiveDocument(""))
	_, has = ws.ActiveDocument()
	assert.False(t, has)
}

func TestLocal_ActiveDocumentMissingFile(t *testing.T) {
	dir := t.TempDir()
	ws, ok := NewLocal(dir)
	require.True(t, ok)

	require.NoError(t, ws.SetActiveDocument(filepath.Join(dir, "gone.ts")))
	_, has := ws.ActiveDocument()
	assert.False(t, has)
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"app.TSX", "typescriptreact"},
		{"script.py", "python"},
		{"styles.css", "css"},
		{"notes.txt", "plaintext"},
		{"Makefile", "plaintext"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LanguageForPath(tt.path), tt.path)
	}
}
