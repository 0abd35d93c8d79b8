package task

import (
	"cmp"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
)

// List is the task collection loaded for one invocation.
// It is not safe for concurrent use.
type List struct {
	tasks   []Task
	changed bool

	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a List.
type Option func(*List)

// WithClock sets the time source used by Add.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithIDGenerator sets the identifier source used by Add.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(l *List) { l.newID = newID }
}

// NewList creates a List holding a copy of tasks in the given order.
func NewList(tasks []Task, opts ...Option) *List {
	l := &List{
		tasks: slices.Clone(tasks),
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Changed reports whether a mutation altered the list since NewList.
func (l *List) Changed() bool {
	return l.changed
}

// Tasks returns a copy of the tasks in list order. Never nil.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// All returns the tasks in list order. The sequence may be ranged over
// any number of times and reflects the list at iteration time.
func (l *List) All() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range l.tasks {
			if !yield(t) {
				return
			}
		}
	}
}

// Add appends a new incomplete task and returns it.
// The index is one past the current maximum, or 1 for an empty list.
func (l *List) Add(title string) Task {
	maxIndex := 0
	for _, t := range l.tasks {
		maxIndex = max(maxIndex, t.Index)
	}

	t := Task{
		ID:        l.newID(),
		Index:     maxIndex + 1,
		Title:     title,
		CreatedAt: l.now().UTC(),
	}
	l.tasks = append(l.tasks, t)
	l.changed = true
	return t
}

// MarkDone marks the first task with the given index complete.
// Marking a complete task again is not an error.
func (l *List) MarkDone(index int) (Task, error) {
	for i := range l.tasks {
		if l.tasks[i].Index != index {
			continue
		}
		if !l.tasks[i].Complete {
			l.tasks[i].Complete = true
			l.changed = true
		}
		return l.tasks[i], nil
	}
	return Task{}, &NotFoundError{Index: index}
}

// Remove deletes every task with the given index, then sorts the rest by
// index and renumbers them 1..N. It returns the first removed task.
func (l *List) Remove(index int) (Task, error) {
	var removed []Task
	kept := l.tasks[:0:0]
	for _, t := range l.tasks {
		if t.Index == index {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	if len(removed) == 0 {
		return Task{}, &NotFoundError{Index: index}
	}

	slices.SortStableFunc(kept, func(a, b Task) int {
		return cmp.Compare(a.Index, b.Index)
	})
	for i := range kept {
		kept[i].Index = i + 1
	}

	l.tasks = kept
	l.changed = true
	return removed[0], nil
}

// Clear removes all tasks.
func (l *List) Clear() {
	if len(l.tasks) > 0 {
		l.changed = true
	}
	l.tasks = nil
}
