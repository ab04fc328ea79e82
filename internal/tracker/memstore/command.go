package memstore

import (
	"context"
	"sync"

	"github.com/trackhub-io/trackhub/internal/tracker/core"
	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

// CommandStore keeps dispatched commands by ID.
type CommandStore struct {
	mu       sync.RWMutex
	commands map[string]*model.Command
}

var _ core.CommandRepository = (*CommandStore)(nil)

// NewCommandStore creates an empty command store.
func NewCommandStore() *CommandStore {
	return &CommandStore{commands: map[string]*model.Command{}}
}

// Create implements core.CommandRepository.
func (c *CommandStore) Create(_ context.Context, cmd *model.Command) error {
	clone := *cmd
	c.mu.Lock()
	c.commands[cmd.ID] = &clone
	c.mu.Unlock()
	return nil
}

// Get implements core.CommandRepository.
func (c *CommandStore) Get(_ context.Context, id string) (*model.Command, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cmd, ok := c.commands[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *cmd
	return &clone, nil
}

// UpdateStatus implements core.CommandRepository.
func (c *CommandStore) UpdateStatus(_ context.Context, id string, status model.CommandStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cmd, ok := c.commands[id]
	if !ok {
		return core.ErrNotFound
	}
	cmd.Status = status
	return nil
}
