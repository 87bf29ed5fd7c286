// Package history records applied edits so they can be undone and redone.
package history

import (
	"errors"
	"time"

	"github.com/fieldmark/designer/internal/notebook"
)

// DefaultDepth is the number of edits kept when no depth is configured.
const DefaultDepth = 50

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one applied edit with the states on either side of it.
type Entry struct {
	Operation string
	Before    *notebook.UISpec
	After     *notebook.UISpec
	At        time.Time
}

// Stack is a bounded undo/redo log backed by a ring buffer. Once full, the
// oldest entry is overwritten. A Stack is not safe for concurrent use.
type Stack struct {
	buf    []Entry
	start  int
	size   int
	cursor int
}

// New returns a stack holding at most depth entries.
func New(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{buf: make([]Entry, depth)}
}

// Depth returns the capacity of the stack.
func (s *Stack) Depth() int {
	return len(s.buf)
}

func (s *Stack) at(i int) int {
	return (s.start + i) % len(s.buf)
}

// Record appends an entry and discards anything that was undone.
func (s *Stack) Record(e Entry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	for i := s.cursor; i < s.size; i++ {
		s.buf[s.at(i)] = Entry{}
	}
	s.size = s.cursor

	if s.size == len(s.buf) {
		s.buf[s.start] = Entry{}
		s.start = s.at(1)
		s.size--
	}
	s.buf[s.at(s.size)] = e
	s.size++
	s.cursor = s.size
}

// Undo steps back one entry and returns it. The caller restores Before.
func (s *Stack) Undo() (Entry, error) {
	if s.cursor == 0 {
		return Entry{}, ErrNothingToUndo
	}
	s.cursor--
	return s.buf[s.at(s.cursor)], nil
}

// Redo steps forward one entry and returns it. The caller restores After.
func (s *Stack) Redo() (Entry, error) {
	if s.cursor == s.size {
		return Entry{}, ErrNothingToRedo
	}
	e := s.buf[s.at(s.cursor)]
	s.cursor++
	return e, nil
}

func (s *Stack) CanUndo() bool { return s.cursor > 0 }

func (s *Stack) CanRedo() bool { return s.cursor < s.size }

// Entries returns the applied entries, oldest first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, s.cursor)
	for i := range out {
		out[i] = s.buf[s.at(i)]
	}
	return out
}

// Len returns the number of entries that can be undone.
func (s *Stack) Len() int {
	return s.cursor
}

// Reset drops every entry.
func (s *Stack) Reset() {
	clear(s.buf)
	s.start, s.size, s.cursor = 0, 0, 0
}
