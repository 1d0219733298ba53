package task

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/amonks/taskmate/internal/kv"
)

// Store holds the authoritative active and deleted lists.
// It is not safe for concurrent use; callers dispatch one intent at a time.
type Store struct {
	persist  *Persistence
	active   []Task
	deleted  []Task
	ids      idAllocator
	notifier Notifier
	logger   *log.Logger
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// Medium is where both lists are persisted. Required.
	Medium kv.Medium

	// Now is the clock used for id allocation. Defaults to time.Now.
	Now func() time.Time

	// Notifier receives one notice per mutation attempt. Optional.
	Notifier Notifier

	// Logger receives persistence warnings. If nil, warnings are discarded.
	Logger *log.Logger
}

// Open loads both lists from the medium.
func Open(opts OpenOptions) (*Store, error) {
	if opts.Medium == nil {
		return nil, fmt.Errorf("task store requires a medium")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	persist := NewPersistence(opts.Medium, opts.Logger)
	active, err := persist.Load(KeyTasks)
	if err != nil {
		return nil, err
	}
	deleted, err := persist.Load(KeyDeletedTasks)
	if err != nil {
		return nil, err
	}

	s := &Store{
		persist:  persist,
		ids:      idAllocator{now: opts.Now},
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
	seen := make(map[int64]bool)
	s.active = s.sanitize(active, seen, KeyTasks)
	s.deleted = s.sanitize(deleted, seen, KeyDeletedTasks)
	return s, nil
}

// sanitize drops records without a positive id and ids already seen, so
// the lists stay disjoint even if the stored records are not.
func (s *Store) sanitize(tasks []Task, seen map[int64]bool, key string) []Task {
	kept := make([]Task, 0, len(tasks))
	for _, item := range tasks {
		if item.ID <= 0 {
			s.logger.Printf("dropping record with invalid id %d from %s", item.ID, key)
			continue
		}
		if seen[item.ID] {
			s.logger.Printf("dropping duplicate id %d from %s", item.ID, key)
			continue
		}
		seen[item.ID] = true
		s.ids.observe(item.ID)
		kept = append(kept, item)
	}
	return kept
}

// SetNotifier replaces the notifier. A nil notifier silences notices.
func (s *Store) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.notifier = n
}

// save writes both lists. Failures are logged and surfaced as a warning
// notice; the in-memory state stays authoritative either way.
func (s *Store) save() {
	err := errors.Join(
		s.persist.Save(KeyTasks, s.active),
		s.persist.Save(KeyDeletedTasks, s.deleted),
	)
	if err != nil {
		s.logger.Printf("persist tasks: %v", err)
		message := strings.ReplaceAll(err.Error(), "\n", "; ")
		s.notifier.Notify(Notice{Level: NoticeWarning, Message: "Changes not saved: " + message})
	}
}

func (s *Store) succeed(message string) {
	s.save()
	s.notifier.Notify(Notice{Level: NoticeSuccess, Message: message})
}

func (s *Store) fail(err error) error {
	s.notifier.Notify(errorNotice(err))
	return err
}

// Tasks returns a copy of the active list.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.active...)
}

// Deleted returns a copy of the deleted list.
func (s *Store) Deleted() []Task {
	return append([]Task(nil), s.deleted...)
}

// taken reports whether id is in either list.
func (s *Store) taken(id int64) bool {
	return indexOf(s.active, id) >= 0 || indexOf(s.deleted, id) >= 0
}

// Find looks up id in both lists. The returned tab is TabDeleted for tasks
// in the deleted list and TabActive or TabCompleted otherwise.
func (s *Store) Find(id int64) (Task, Tab, bool) {
	if i := indexOf(s.active, id); i >= 0 {
		item := s.active[i]
		if item.Completed {
			return item, TabCompleted, true
		}
		return item, TabActive, true
	}
	if i := indexOf(s.deleted, id); i >= 0 {
		return s.deleted[i], TabDeleted, true
	}
	return Task{}, "", false
}

func indexOf(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
