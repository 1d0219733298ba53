package task

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/amonks/taskmate/internal/kv"
)

var testEpoch = time.Date(2026, 1, 20, 10, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(n Notice) {
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) last() Notice {
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

// failingMedium stores nothing and fails every Put.
type failingMedium struct {
	kv.Medium
	puts int
}

func (m *failingMedium) Put(key string, value []byte) error {
	m.puts++
	return errors.New("disk full")
}

func openTestStore(t *testing.T, medium kv.Medium) (*Store, *recordingNotifier) {
	t.Helper()

	if medium == nil {
		medium = kv.NewMemory()
	}
	notifier := &recordingNotifier{}
	store, err := Open(OpenOptions{
		Medium:   medium,
		Now:      func() time.Time { return testEpoch },
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, notifier
}

func mustAdd(t *testing.T, store *Store, text string, category Category) Task {
	t.Helper()

	item, err := store.Add(text, category)
	if err != nil {
		t.Fatalf("add %q: %v", text, err)
	}
	return item
}

func viewIDs(store *Store, tab Tab) []int64 {
	var ids []int64
	for item := range store.View(tab) {
		ids = append(ids, item.ID)
	}
	return ids
}

func listIDs(tasks []Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, item := range tasks {
		ids = append(ids, item.ID)
	}
	return ids
}

func assertDisjoint(t *testing.T, store *Store) {
	t.Helper()

	for _, id := range listIDs(store.Tasks()) {
		if slices.Contains(listIDs(store.Deleted()), id) {
			t.Fatalf("task %d present in both lists", id)
		}
	}
}
