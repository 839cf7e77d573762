package orchestrator

import (
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
)

// History is the bounded in-memory task store. Every executed task lands
// here regardless of outcome. When the bound is exceeded the least recently
// used entry is evicted, so a long-lived process cannot grow without limit.
type History struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *domain.AgentTask]
}

// NewHistory creates a task history bounded to maxEntries.
// A non-positive bound falls back to the built-in default size.
func NewHistory(maxEntries int) (*History, error) {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultHistorySize
	}
	cache, err := lru.New[string, *domain.AgentTask](maxEntries)
	if err != nil {
		return nil, conductorerrors.Wrap(err, "create task history")
	}
	return &History{cache: cache}, nil
}

// Store records a task, keyed by its id. Storing the same id again replaces
// the entry and refreshes its recency.
func (h *History) Store(task *domain.AgentTask) {
	if task == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache.Add(task.ID, task)
}

// Get retrieves a task by id.
// Returns ErrTaskNotFound when the id is absent or has been evicted.
func (h *History) Get(id string) (*domain.AgentTask, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	task, ok := h.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", conductorerrors.ErrTaskNotFound, id)
	}
	return task, nil
}

// List returns up to limit tasks, most recently created first, optionally
// filtered to one agent type. A non-positive limit uses the default listing
// size. The empty agent type matches all tasks.
func (h *History) List(limit int, agentType domain.AgentType) []*domain.AgentTask {
	if limit <= 0 {
		limit = constants.DefaultHistoryListLimit
	}

	h.mu.RLock()
	tasks := make([]*domain.AgentTask, 0, h.cache.Len())
	for _, id := range h.cache.Keys() {
		task, ok := h.cache.Peek(id)
		if !ok {
			continue
		}
		if agentType != "" && task.Type != agentType {
			continue
		}
		tasks = append(tasks, task)
	}
	h.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

// Len returns the number of tasks currently held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cache.Len()
}
