package task

import (
	"iter"
	"slices"
)

// Add creates a task at the end of the active list.
func (s *Store) Add(text string, category Category) (Task, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		return Task{}, s.fail(err)
	}
	if err := ValidateCategory(category); err != nil {
		return Task{}, s.fail(err)
	}

	item := Task{
		ID:       s.ids.next(s.taken),
		Text:     trimmed,
		Category: category,
	}
	s.active = append(s.active, item)
	s.succeed(MessageAdded)
	return item, nil
}

// Toggle flips the completion flag of a task in the active list.
func (s *Store) Toggle(id int64) (Task, error) {
	i := indexOf(s.active, id)
	if i < 0 {
		return Task{}, s.fail(notFound(id, "active"))
	}
	s.active[i].Completed = !s.active[i].Completed
	item := s.active[i]
	s.succeed(MessageUpdated)
	return item, nil
}

// Delete moves a task from the active list to the end of the deleted list.
func (s *Store) Delete(id int64) error {
	i := indexOf(s.active, id)
	if i < 0 {
		return s.fail(notFound(id, "active"))
	}
	item := s.active[i]
	s.active = slices.Delete(s.active, i, i+1)
	s.deleted = append(s.deleted, item)
	s.succeed(MessageDeleted)
	return nil
}

// Restore moves a task from the deleted list to the end of the active list.
func (s *Store) Restore(id int64) error {
	i := indexOf(s.deleted, id)
	if i < 0 {
		return s.fail(notFound(id, "deleted"))
	}
	item := s.deleted[i]
	s.deleted = slices.Delete(s.deleted, i, i+1)
	s.active = append(s.active, item)
	s.succeed(MessageRestored)
	return nil
}

// Purge permanently removes a task from the deleted list.
func (s *Store) Purge(id int64) error {
	i := indexOf(s.deleted, id)
	if i < 0 {
		return s.fail(notFound(id, "deleted"))
	}
	s.deleted = slices.Delete(s.deleted, i, i+1)
	s.succeed(MessagePurged)
	return nil
}

// PurgeAll empties the deleted list and returns how many tasks were removed.
func (s *Store) PurgeAll() (int, error) {
	if len(s.deleted) == 0 {
		return 0, s.fail(ErrNothingToPurge)
	}
	n := len(s.deleted)
	s.deleted = nil
	s.succeed(MessagePurgeAll)
	return n, nil
}

// View yields the tasks shown in tab, in list order. The sequence reads the
// current lists each time it is ranged over.
func (s *Store) View(tab Tab) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		source, deleted := s.active, false
		if tab == TabDeleted {
			source, deleted = s.deleted, true
		}
		for _, item := range source {
			if !tab.Shows(item, deleted) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Counts summarizes the lists.
type Counts struct {
	Active     int
	Completed  int
	Deleted    int
	ByCategory map[Category]int
}

// Counts tallies tasks per tab and per category. Category tallies cover the
// active list only.
func (s *Store) Counts() Counts {
	counts := Counts{
		Deleted:    len(s.deleted),
		ByCategory: make(map[Category]int),
	}
	for _, item := range s.active {
		if item.Completed {
			counts.Completed++
		} else {
			counts.Active++
		}
		counts.ByCategory[item.Category]++
	}
	return counts
}
