// Package history persists generated plans as simple keyed lists.
//
// Plans are grouped by an opaque key, in practice the workspace root.
// The store owns no schema beyond the planner.Plan shape and keeps only
// the most recent plans per key.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/plannerd/internal/planner"
)

// ErrNotFound is returned when a plan id does not exist under a key.
var ErrNotFound = fmt.Errorf("plan not found")

// Store is the plan history contract: save a record, read a list back.
type Store interface {
	// Save prepends plan to the list under key, trimming the list to
	// the retention bound.
	Save(ctx context.Context, key string, plan *planner.Plan) error

	// List returns the plans under key, newest first. A missing key
	// yields an empty list.
	List(ctx context.Context, key string) ([]*planner.Plan, error)

	// Get returns the plan with the given id under key.
	Get(ctx context.Context, key, planID string) (*planner.Plan, error)

	// Delete removes the plan with the given id under key.
	Delete(ctx context.Context, key, planID string) error

	// Clear removes every plan under key.
	Clear(ctx context.Context, key string) error
}

// FileStore is a JSON-file-backed Store. All operations take a single
// process-wide mutex; the store is safe for concurrent use within one
// process but not across processes.
type FileStore struct {
	mu       sync.Mutex
	path     string
	maxPlans int
	logger   *zap.Logger
}

// NewFileStore creates a store writing to path. If path is empty the
// default location (~/.local/share/plannerd/history.json) is used.
// maxPlans bounds retention per key. logger may be nil.
func NewFileStore(path string, maxPlans int, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".local", "share", "plannerd", "history.json")
	}
	if maxPlans <= 0 {
		return nil, fmt.Errorf("maxPlans must be positive, got %d", maxPlans)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, maxPlans: maxPlans, logger: logger}, nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, key string, plan *planner.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}

	plans := append([]*planner.Plan{plan}, data[key]...)
	if len(plans) > s.maxPlans {
		plans = plans[:s.maxPlans]
	}
	data[key] = plans

	return s.flush(data)
}

// List implements Store.
func (s *FileStore) List(ctx context.Context, key string) ([]*planner.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	plans := data[key]
	if plans == nil {
		plans = []*planner.Plan{}
	}
	return plans, nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key, planID string) (*planner.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, p := range data[key] {
		if p.ID == planID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, planID)
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, key, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	plans := data[key]
	for i, p := range plans {
		if p.ID == planID {
			data[key] = append(plans[:i], plans[i+1:]...)
			return s.flush(data)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, planID)
}

// Clear implements Store.
func (s *FileStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.flush(data)
}

// load reads the history file. A missing file is an empty history; a
// corrupt file is treated the same, with a warning, so one bad write
// cannot brick plan generation.
func (s *FileStore) load() (map[string][]*planner.Plan, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string][]*planner.Plan{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var data map[string][]*planner.Plan
	if err := json.Unmarshal(content, &data); err != nil {
		s.logger.Warn("history file corrupt, starting fresh", zap.Error(err))
		return map[string][]*planner.Plan{}, nil
	}
	if data == nil {
		data = map[string][]*planner.Plan{}
	}
	return data, nil
}

// flush writes the history atomically via a temp file and rename.
func (s *FileStore) flush(data map[string][]*planner.Plan) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
