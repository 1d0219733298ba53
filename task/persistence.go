package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/amonks/taskmate/internal/kv"
)

const (
	// KeyTasks holds the active list.
	KeyTasks = "tasks"

	// KeyDeletedTasks holds the deleted list.
	KeyDeletedTasks = "deletedTasks"
)

// Persistence encodes task lists as JSON arrays on a kv.Medium.
type Persistence struct {
	medium kv.Medium
	logger *log.Logger
}

// NewPersistence wraps medium. A nil logger discards warnings.
func NewPersistence(medium kv.Medium, logger *log.Logger) *Persistence {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Persistence{medium: medium, logger: logger}
}

// Load returns the tasks stored under key. An absent or unparsable value
// yields an empty list; only medium failures are returned as errors.
func (p *Persistence) Load(key string) ([]Task, error) {
	data, err := p.medium.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		p.logger.Printf("ignoring malformed %s record: %v", key, err)
		return nil, nil
	}
	return tasks, nil
}

// Save replaces the tasks stored under key.
func (p *Persistence) Save(key string, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := p.medium.Put(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
