package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/plannerd/internal/history"
	"github.com/fyrsmithlabs/plannerd/internal/planner"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// mockCompleter satisfies planner.Completer without network access.
type mockCompleter struct{}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (any, error) {
	return map[string]any{"steps": []any{}}, nil
}

func newTestDeps(t *testing.T) (*planner.Service, history.Store, *workspace.Local) {
	t.Helper()

	local, ok := workspace.NewLocal(t.TempDir())
	require.True(t, ok)

	gatherer := workspace.NewGatherer(local, nil)
	svc := planner.NewService(gatherer, &mockCompleter{}, nil, nil)

	store, err := history.NewFileStore(t.TempDir()+"/history.json", 10, nil)
	require.NoError(t, err)

	return svc, store, local
}

func TestNewServer(t *testing.T) {
	svc, store, local := newTestDeps(t)

	srv, err := NewServer(nil, svc, store, local)
	require.NoError(t, err)
	require.NotNil(t, srv)
}

func TestNewServer_RequiredDependencies(t *testing.T) {
	svc, store, local := newTestDeps(t)

	_, err := NewServer(nil, nil, store, local)
	assert.Error(t, err)

	_, err = NewServer(nil, svc, nil, local)
	assert.Error(t, err)

	_, err = NewServer(nil, svc, store, nil)
	assert.Error(t, err)
}

func TestHistoryKey(t *testing.T) {
	svc, store, local := newTestDeps(t)
	srv, err := NewServer(nil, svc, store, local)
	require.NoError(t, err)

	root, ok := local.Root()
	require.True(t, ok)
	assert.Equal(t, root, srv.historyKey())
}
